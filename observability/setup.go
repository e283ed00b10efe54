package observability

import (
	"context"
	stderrors "errors"
)

// Config enables and points the exporters.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Insecure       bool
}

func (c Config) withDefaults() Config {
	if c.ServiceVersion == "" {
		c.ServiceVersion = "dev"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	return c
}

// ShutdownFunc flushes and stops whatever Setup started.
type ShutdownFunc func(ctx context.Context) error

// Setup installs OTLP trace and metric providers when cfg.Enabled is set.
// Disabled telemetry returns a no-op shutdown and leaves the global
// providers untouched.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	cfg = cfg.withDefaults()
	tp, err := newTracerProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mcfg := DefaultMeterConfig(cfg.ServiceName)
	mcfg.Endpoint = cfg.Endpoint
	mcfg.Insecure = cfg.Insecure
	mcfg.ServiceVersion = cfg.ServiceVersion
	mcfg.Environment = cfg.Environment
	mp, err := InitMeter(ctx, &mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
