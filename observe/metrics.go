package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies how a request attempt ended, for metrics purposes.
type Outcome int

const (
	// OutcomeSuccess is a 2xx exchange.
	OutcomeSuccess Outcome = iota
	// OutcomeTransportError is a network-level failure.
	OutcomeTransportError
	// OutcomeHTTPError is a non-2xx exchange that is not rate limiting.
	OutcomeHTTPError
	// OutcomeRateLimited is classified rate-limit exhaustion.
	OutcomeRateLimited
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Metrics records request-attempt metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordAttempt records one request attempt with its duration and
	// outcome.
	RecordAttempt(ctx context.Context, meta RequestMeta, duration time.Duration, outcome Outcome)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	requests     metric.Int64Counter
	errorCount   metric.Int64Counter
	rateLimited  metric.Int64Counter
	retries      metric.Int64Counter
	durationHist metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	requests, err := meter.Int64Counter(
		"http.client.requests",
		metric.WithDescription("Total number of request attempts sent"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"http.client.errors",
		metric.WithDescription("Total number of failed request attempts"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	rateLimited, err := meter.Int64Counter(
		"http.client.rate_limited",
		metric.WithDescription("Total number of attempts classified as rate-limit exhaustion"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	retries, err := meter.Int64Counter(
		"http.client.retries",
		metric.WithDescription("Total number of retry attempts (attempt > 1)"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"http.client.duration_ms",
		metric.WithDescription("Request attempt duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		requests:     requests,
		errorCount:   errorCount,
		rateLimited:  rateLimited,
		retries:      retries,
		durationHist: durationHist,
	}, nil
}

// RecordAttempt records metrics for one request attempt.
func (m *metricsImpl) RecordAttempt(ctx context.Context, meta RequestMeta, duration time.Duration, outcome Outcome) {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", meta.Method),
		attribute.String("http.request.outcome", outcome.String()),
	}
	if meta.Host != "" {
		attrs = append(attrs, attribute.String("server.address", meta.Host))
	}

	opt := metric.WithAttributes(attrs...)

	m.requests.Add(ctx, 1, opt)

	if outcome != OutcomeSuccess {
		m.errorCount.Add(ctx, 1, opt)
	}
	if outcome == OutcomeRateLimited {
		m.rateLimited.Add(ctx, 1, opt)
	}
	if meta.Attempt > 1 {
		m.retries.Add(ctx, 1, opt)
	}

	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordAttempt(ctx context.Context, meta RequestMeta, duration time.Duration, outcome Outcome) {
}
