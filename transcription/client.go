package transcription

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
)

// Client is the pipeline's view of a provider. It never returns an error:
// a failed call is logged and reported as ok == false.
type Client struct {
	provider Provider
	language string
	model    string
	log      *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientLogger sets the logger.
func WithClientLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLanguage sets the language hint sent with every request.
func WithLanguage(lang string) ClientOption {
	return func(c *Client) { c.language = lang }
}

// WithModel overrides the provider's model for every request.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// NewClient wraps provider.
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{provider: provider, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("transcription")
	return c
}

// Provider returns the wrapped provider.
func (c *Client) Provider() Provider { return c.provider }

// Transcribe submits the artifact at path and returns the recovered text.
// Any failure, including a panic inside the provider, yields ("", false).
func (c *Client) Transcribe(ctx context.Context, path string) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logFailure(ctx, path, errors.Internal(fmt.Errorf("provider panic: %v", r)))
			text, ok = "", false
		}
	}()

	resp, err := c.provider.Transcribe(ctx, Request{
		AudioPath: path,
		Language:  c.language,
		Model:     c.model,
	})
	if err != nil {
		c.logFailure(ctx, path, err)
		return "", false
	}
	if resp == nil {
		c.logFailure(ctx, path, errors.ExternalServiceError(c.provider.Name(), fmt.Errorf("empty response")))
		return "", false
	}
	return strings.TrimSpace(resp.Text), true
}

func (c *Client) logFailure(ctx context.Context, path string, err error) {
	appErr := errors.Wrap(err)
	c.log.WithContext(ctx).Error("transcription failed", logger.Fields(
		"provider", c.provider.Name(),
		logger.FieldPath, path,
		logger.FieldError, err.Error(),
		"code", string(appErr.Code),
		"retryable", appErr.Retryable,
	))
}
