package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMiddleware_WrapSuccess(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("newMetrics() error = %v", err)
	}

	var buf bytes.Buffer
	mw := NewMiddleware(newTracer(tp.Tracer("test")), metrics, NewLoggerWithWriter("debug", &buf))

	called := false
	fn := mw.Wrap(func(ctx context.Context, meta RequestMeta) (Outcome, error) {
		called = true
		return OutcomeSuccess, nil
	})

	meta := RequestMeta{Method: "GET", Host: "api.example.com", Attempt: 1}
	outcome, err := fn(context.Background(), meta)
	if err != nil {
		t.Fatalf("wrapped fn error = %v", err)
	}
	if outcome != OutcomeSuccess {
		t.Errorf("outcome = %v, want success", outcome)
	}
	if !called {
		t.Fatal("wrapped function was not called")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Name() != "http.client.GET" {
		t.Errorf("span name = %q, want http.client.GET", spans[0].Name())
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got := counterValue(t, rm, "http.client.requests"); got != 1 {
		t.Errorf("http.client.requests = %d, want 1", got)
	}

	if buf.Len() == 0 {
		t.Error("expected a log line for the attempt")
	}
}

func TestMiddleware_WrapError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	mw := NewMiddleware(newTracer(tp.Tracer("test")), &noopMetrics{}, NopLogger())

	attemptErr := errors.New("403 Forbidden")
	fn := mw.Wrap(func(ctx context.Context, meta RequestMeta) (Outcome, error) {
		return OutcomeRateLimited, attemptErr
	})

	outcome, err := fn(context.Background(), RequestMeta{Method: "GET", Attempt: 1})
	if !errors.Is(err, attemptErr) {
		t.Errorf("error = %v, want propagated unchanged", err)
	}
	if outcome != OutcomeRateLimited {
		t.Errorf("outcome = %v, want rate_limited", outcome)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if len(spans[0].Events()) == 0 {
		t.Error("span has no recorded error event")
	}
}

func TestMiddlewareFromObserver(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "limitgate-test"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver() error = %v", err)
	}
	if mw == nil {
		t.Fatal("MiddlewareFromObserver() = nil")
	}

	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("MiddlewareFromObserver(nil) error = %v, want ErrNilObserver", err)
	}
}

func TestNopMiddleware(t *testing.T) {
	mw := NopMiddleware()

	fn := mw.Wrap(func(ctx context.Context, meta RequestMeta) (Outcome, error) {
		return OutcomeSuccess, nil
	})
	if _, err := fn(context.Background(), RequestMeta{Method: "GET"}); err != nil {
		t.Errorf("wrapped fn error = %v", err)
	}
}

func TestRequestMeta_SpanName(t *testing.T) {
	if got := (RequestMeta{Method: "POST"}).SpanName(); got != "http.client.POST" {
		t.Errorf("SpanName() = %q", got)
	}
	if got := (RequestMeta{}).SpanName(); got != "http.client.request" {
		t.Errorf("SpanName() = %q", got)
	}
	meta := RequestMeta{Host: "api.example.com", Path: "/user"}
	if got := meta.Target(); got != "api.example.com/user" {
		t.Errorf("Target() = %q", got)
	}
}
