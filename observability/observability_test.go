package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kbukum/audioscribe/errors"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{ServiceName: "audioscribe", Environment: "ci"}.withDefaults()

	if cfg.ServiceVersion != "dev" {
		t.Errorf("expected ServiceVersion 'dev', got %s", cfg.ServiceVersion)
	}
	if cfg.Environment != "ci" {
		t.Errorf("expected Environment to be kept, got %s", cfg.Environment)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("audioscribe")

	if cfg.ServiceName != "audioscribe" {
		t.Errorf("expected ServiceName 'audioscribe', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRun(ctx, StatusOK, time.Second)
	metrics.RecordChunk(ctx, "openai", StatusFailed, 100*time.Millisecond)
	metrics.RecordStage(ctx, "split", 50*time.Millisecond)
	metrics.RecordError(ctx, "TRANSCODE_FAILED", "transcoder")
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var metrics *Metrics
	ctx := context.Background()
	metrics.RecordRun(ctx, StatusOK, time.Second)
	metrics.RecordChunk(ctx, "openai", StatusOK, time.Second)
	metrics.RecordStage(ctx, "split", time.Second)
	metrics.RecordError(ctx, "INTERNAL_ERROR", "transcriber")
}

func TestMetricsAreCollected(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	metrics.RecordChunk(ctx, "openai", StatusOK, time.Second)
	metrics.RecordChunk(ctx, "openai", StatusFailed, time.Second)
	metrics.RecordChunk(ctx, "openai", StatusOK, time.Second)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatal(err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "transcription.chunks" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	if total != 3 {
		t.Fatalf("expected 3 chunk records, got %d", total)
	}
}

func TestMeter(t *testing.T) {
	if Meter("test-meter") == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestStartSpanRecordsName(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), SpanSplit)
	SetSpanAttribute(ctx, AttrChunkCount, 4)
	SetSpanAttribute(ctx, AttrFile, "lecture.wav")
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "unsupported-key", 3.14)
	SetSpanError(ctx, apperrors.SplitFailed(2, fmt.Errorf("boom")))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanSplit {
		t.Errorf("expected span %q, got %q", SpanSplit, spans[0].Name)
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected the error to be recorded as an event, got %d events", len(spans[0].Events))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
	attrs := map[string]attribute.Value{}
	for _, attr := range spans[0].Attributes {
		attrs[string(attr.Key)] = attr.Value
	}
	if attrs[AttrChunkCount].AsInt64() != 4 {
		t.Errorf("expected %s=4, got %v", AttrChunkCount, attrs[AttrChunkCount].Emit())
	}
	if attrs[AttrErrorCode].AsString() != string(apperrors.ErrCodeSplitFailed) {
		t.Errorf("expected %s=%s, got %q", AttrErrorCode, apperrors.ErrCodeSplitFailed, attrs[AttrErrorCode].AsString())
	}
	if _, ok := attrs["unsupported-key"]; ok {
		t.Error("expected float attribute to be ignored")
	}
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
	SetSpanError(ctx, nil)
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

func TestSetupEnabled(t *testing.T) {
	prevTP := otel.GetTracerProvider()
	prevMP := otel.GetMeterProvider()
	defer func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	}()

	shutdown, err := Setup(context.Background(), Config{
		Enabled:     true,
		ServiceName: "audioscribe",
		Endpoint:    "localhost:4318",
		Insecure:    true,
	})
	if err != nil {
		t.Skipf("Setup failed (schema conflict in resource merge): %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestNewTracerProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	for _, insecure := range []bool{true, false} {
		cfg := Config{ServiceName: "test", ServiceVersion: "1.0.0", Environment: "test", Insecure: insecure}.withDefaults()
		tp, err := newTracerProvider(context.Background(), cfg)
		if err != nil {
			t.Skipf("newTracerProvider failed (schema conflict in resource merge): %v", err)
		}
		_ = tp.Shutdown(context.Background())
	}
}

func TestInitMeter(t *testing.T) {
	prev := otel.GetMeterProvider()
	defer otel.SetMeterProvider(prev)

	for _, insecure := range []bool{true, false} {
		cfg := &MeterConfig{
			ServiceName:    "test",
			ServiceVersion: "1.0.0",
			Environment:    "test",
			Endpoint:       "localhost:4318",
			Insecure:       insecure,
		}
		mp, err := InitMeter(context.Background(), cfg)
		if err != nil {
			t.Skipf("InitMeter failed (schema conflict in resource merge): %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = mp.Shutdown(ctx)
		cancel()
	}
}
