// Package observability provides optional OpenTelemetry tracing and metrics
// for transcription runs.
//
// Nothing is exported unless telemetry is enabled; without Setup the global
// otel providers are no-ops and every helper here is safe to call.
//
//	shutdown, err := observability.Setup(ctx, observability.Config{
//		Enabled:     true,
//		ServiceName: "audioscribe",
//		Endpoint:    "localhost:4318",
//		Insecure:    true,
//	})
//	defer shutdown(context.Background())
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranscode)
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("audioscribe"))
//	metrics.RecordChunk(ctx, "openai", observability.StatusOK, elapsed)
package observability
