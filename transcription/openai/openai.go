// Package openai implements transcription.Provider on the OpenAI audio
// transcription endpoint.
package openai

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/transcription"
)

const (
	// ProviderName is the name reported by the OpenAI provider.
	ProviderName = "openai"

	serviceName = "OpenAI"
)

// Config holds configuration for the OpenAI provider.
type Config struct {
	APIKey string
	// Model defaults to whisper-1.
	Model string
	// BaseURL overrides the API root, e.g. for a compatible self-hosted server.
	BaseURL string
	// Language is the default language hint.
	Language string
	// Timeout bounds one request. Zero leaves the transport default.
	Timeout time.Duration
	// HTTPClient replaces the HTTP client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Provider implements transcription.Provider with go-openai.
type Provider struct {
	cfg    Config
	client *goopenai.Client
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates an OpenAI provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = goopenai.Whisper1
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	switch {
	case cfg.HTTPClient != nil:
		clientCfg.HTTPClient = cfg.HTTPClient
	case cfg.Timeout > 0:
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Provider{
		cfg:    cfg,
		client: goopenai.NewClientWithConfig(clientCfg),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Transcribe uploads req.AudioPath and returns the recovered text.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	resp, err := p.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    model,
		FilePath: req.AudioPath,
		Language: lang,
		Format:   goopenai.AudioResponseFormatJSON,
	})
	if err != nil {
		return nil, classify(err)
	}

	return &transcription.Response{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}

// classify maps go-openai errors onto application error codes.
func classify(err error) *errors.AppError {
	status := 0
	var apiErr *goopenai.APIError
	var reqErr *goopenai.RequestError
	switch {
	case stderrors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case stderrors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	var appErr *errors.AppError
	if status == http.StatusTooManyRequests {
		appErr = errors.RateLimited(serviceName, err)
	} else {
		appErr = errors.ExternalServiceError(serviceName, err)
	}
	if status != 0 {
		appErr = appErr.WithDetail("status", status)
	}
	return appErr
}
