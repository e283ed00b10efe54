package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/logger"
)

const tracerName = "github.com/kbukum/audioscribe"

// Span names, one per pipeline stage.
const (
	SpanRun        = "transcriber.run"
	SpanTranscode  = "audio.transcode"
	SpanProbe      = "audio.probe"
	SpanSplit      = "audio.split"
	SpanTranscribe = "transcription.transcribe"
	SpanWrite      = "output.write"
)

// Span attribute keys.
const (
	AttrRunID      = "run.id"
	AttrFile       = "audio.file"
	AttrFormat     = "audio.format"
	AttrChunkCount = "chunk.count"
	AttrProvider   = "transcription.provider"
	AttrErrorCode  = "error.code"
)

// newTracerProvider exports every span over OTLP/HTTP and installs itself
// as the global provider.
func newTracerProvider(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Debug("tracer initialized", logger.Fields("endpoint", cfg.Endpoint))
	return tp, nil
}

func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.DeploymentEnvironment(environment),
		),
	)
}

// StartSpan starts a span from the global tracer provider.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

// SetSpanAttribute sets an attribute on the span in ctx. Values other than
// string, int, int64 and bool are ignored.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	}
}

// SetSpanError marks the span in ctx as failed and tags it with the
// application error code.
func SetSpanError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if err == nil || !span.IsRecording() {
		return
	}
	appErr := errors.Wrap(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, appErr.Message)
	span.SetAttributes(attribute.String(AttrErrorCode, string(appErr.Code)))
}
