package transcription

import (
	"context"
	"time"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
	"github.com/kbukum/audioscribe/observability"
)

// Middleware transforms a Provider by wrapping it.
type Middleware func(Provider) Provider

// Chain composes multiple middlewares into one. The first middleware is
// outermost: Chain(a, b, c)(p) is equivalent to a(b(c(p))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Provider) Provider {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// WithLogging logs each call with its duration and outcome.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Provider) Provider {
		return &loggingProvider{inner: inner, log: log.WithComponent("transcription")}
	}
}

type loggingProvider struct {
	inner Provider
	log   *logger.Logger
}

func (l *loggingProvider) Name() string { return l.inner.Name() }

func (l *loggingProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Transcribe(ctx, req)

	fields := logger.Fields(
		"provider", l.inner.Name(),
		logger.FieldPath, req.AudioPath,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.WithContext(ctx).Debug("provider call failed", fields)
	} else {
		if resp != nil {
			fields["chars"] = len(resp.Text)
		}
		l.log.WithContext(ctx).Debug("provider call ok", fields)
	}
	return resp, err
}

// WithTracing wraps each call in a span.
func WithTracing() Middleware {
	return func(inner Provider) Provider {
		return &tracingProvider{inner: inner}
	}
}

type tracingProvider struct {
	inner Provider
}

func (t *tracingProvider) Name() string { return t.inner.Name() }

func (t *tracingProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrProvider, t.inner.Name())
	observability.SetSpanAttribute(ctx, observability.AttrFile, req.AudioPath)

	resp, err := t.inner.Transcribe(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return resp, err
}

// WithMetrics records a chunk counter and latency per call.
func WithMetrics(metrics *observability.Metrics) Middleware {
	return func(inner Provider) Provider {
		return &metricsProvider{inner: inner, metrics: metrics}
	}
}

type metricsProvider struct {
	inner   Provider
	metrics *observability.Metrics
}

func (m *metricsProvider) Name() string { return m.inner.Name() }

func (m *metricsProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := m.inner.Transcribe(ctx, req)

	status := observability.StatusOK
	if err != nil {
		status = observability.StatusFailed
		m.metrics.RecordError(ctx, string(errors.Wrap(err).Code), "transcription")
	}
	m.metrics.RecordChunk(ctx, m.inner.Name(), status, time.Since(start))
	return resp, err
}
