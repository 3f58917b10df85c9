package observe

import (
	"context"
	"errors"
	"testing"
)

// TestConfigValidate_Valid verifies that a fully valid config passes validation.
func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "limitgate-test",
		Version:     "1.0.0",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "stdout",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestConfigValidate_MissingServiceName(t *testing.T) {
	cfg := Config{}

	if err := cfg.Validate(); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("Validate() error = %v, want ErrMissingServiceName", err)
	}
}

func TestConfigValidate_BadExporters(t *testing.T) {
	cfg := Config{
		ServiceName: "limitgate-test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "bogus"},
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTracingExporter) {
		t.Errorf("Validate() error = %v, want ErrInvalidTracingExporter", err)
	}

	cfg = Config{
		ServiceName: "limitgate-test",
		Metrics:     MetricsConfig{Enabled: true, Exporter: "bogus"},
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidMetricsExporter) {
		t.Errorf("Validate() error = %v, want ErrInvalidMetricsExporter", err)
	}
}

func TestConfigValidate_BadSamplePct(t *testing.T) {
	cfg := Config{
		ServiceName: "limitgate-test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5},
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidSamplePct) {
		t.Errorf("Validate() error = %v, want ErrInvalidSamplePct", err)
	}
}

func TestConfigValidate_BadLogLevel(t *testing.T) {
	cfg := Config{
		ServiceName: "limitgate-test",
		Logging:     LoggingConfig{Enabled: true, Level: "loud"},
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Validate() error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestNewObserver_Disabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "limitgate-test"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}

	if obs.Tracer() == nil {
		t.Error("Tracer() = nil")
	}
	if obs.Meter() == nil {
		t.Error("Meter() = nil")
	}
	if obs.Logger() == nil {
		t.Error("Logger() = nil")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewObserver_NoneExporters(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "limitgate-test",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	}()

	// Providers are live; spans and instruments must be usable.
	_, span := obs.Tracer().Start(context.Background(), "test")
	span.End()

	ctr, err := obs.Meter().Int64Counter("test.counter")
	if err != nil {
		t.Fatalf("Int64Counter() error = %v", err)
	}
	ctr.Add(context.Background(), 1)
}

func TestNewObserver_InvalidConfig(t *testing.T) {
	if _, err := NewObserver(context.Background(), Config{}); err == nil {
		t.Error("NewObserver() error = nil, want validation error")
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()

	// Must not panic, must chain.
	l.Info(context.Background(), "msg")
	if got := l.WithRequest(RequestMeta{Method: "GET"}); got == nil {
		t.Error("WithRequest() = nil")
	}
}
