// Package transcription defines the provider interface and common types
// for speech-to-text backends, plus the Client the pipeline uses to turn
// one chunk into text.
//
// Providers return errors; the Client absorbs them. A failed chunk is
// logged and reported as "no text" so the caller can skip it and keep
// going.
//
// # Backends
//
//   - transcription/openai: OpenAI Whisper over github.com/sashabaranov/go-openai
//
// # Usage
//
//	p := transcription.Chain(
//		transcription.WithTracing(),
//		transcription.WithLogging(log),
//	)(openai.NewProvider(cfg))
//	client := transcription.NewClient(p, transcription.WithClientLogger(log))
//	text, ok := client.Transcribe(ctx, chunkPath)
package transcription
