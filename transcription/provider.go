package transcription

import "context"

// Provider is the interface that transcription backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// ProviderFunc adapts a function to Provider under the given name.
type ProviderFunc struct {
	ProviderName string
	Fn           func(ctx context.Context, req Request) (*Response, error)
}

// Name returns ProviderName.
func (p ProviderFunc) Name() string { return p.ProviderName }

// Transcribe calls Fn.
func (p ProviderFunc) Transcribe(ctx context.Context, req Request) (*Response, error) {
	return p.Fn(ctx, req)
}
