package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/limitgate/exchange"
)

// Handler is the pluggable policy invoked on classified rate-limit
// exhaustion.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; the
//   built-ins hold no per-request state.
// - Context: blocking implementations must honor cancellation.
// - Ownership: conn is borrowed for the duration of the call only.
//
// Returning nil signals the executor to retry; returning an error
// propagates it to the original caller. Wrapped errors must preserve the
// cause chain.
type Handler interface {
	OnLimitExceeded(ctx context.Context, cause error, conn *exchange.FinalizedConn) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, cause error, conn *exchange.FinalizedConn) error

// OnLimitExceeded calls f.
func (f HandlerFunc) OnLimitExceeded(ctx context.Context, cause error, conn *exchange.FinalizedConn) error {
	return f(ctx, cause, conn)
}

// Fail propagates the classified failure immediately, no delay. It is
// stateless and shared.
var Fail Handler = failHandler{}

type failHandler struct{}

func (failHandler) OnLimitExceeded(_ context.Context, cause error, _ *exchange.FinalizedConn) error {
	return cause
}

// Wait sleeps until the advertised reset time and then signals retry. It is
// stateless and shared; construct with NewWait to customize.
var Wait Handler = NewWait(WaitConfig{})

// WaitConfig configures a wait handler.
type WaitConfig struct {
	// Clock supplies time and sleeping. Default: SystemClock().
	Clock Clock

	// Classifier parses the reset time from response headers.
	// Default: NewClassifier(ClassifierConfig{}).
	Classifier *Classifier

	// FallbackDelay is slept when no usable reset time is advertised or
	// the advertised time is already past. Default: 1s.
	FallbackDelay time.Duration

	// MaxDelay caps the sleep regardless of the advertised reset time,
	// so a clock-skewed server cannot stall a caller for hours.
	// Default: 5m.
	MaxDelay time.Duration
}

type waitHandler struct {
	config WaitConfig
}

// NewWait creates a wait handler, applying defaults.
func NewWait(config WaitConfig) Handler {
	if config.Clock == nil {
		config.Clock = SystemClock()
	}
	if config.Classifier == nil {
		config.Classifier = NewClassifier(ClassifierConfig{})
	}
	if config.FallbackDelay <= 0 {
		config.FallbackDelay = time.Second
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 5 * time.Minute
	}
	return &waitHandler{config: config}
}

// OnLimitExceeded sleeps until the reset time parsed from conn, or for the
// fallback delay when no reset is advertised or it is already past, then
// returns nil to signal retry. A context cancellation during the sleep
// fails the operation; the returned error keeps cause in its chain.
func (w *waitHandler) OnLimitExceeded(ctx context.Context, cause error, conn *exchange.FinalizedConn) error {
	now := w.config.Clock.Now()

	delay := w.config.FallbackDelay
	if rec, ok := w.config.Classifier.Record(conn, now); ok && !rec.Reset.IsZero() {
		if until := rec.Reset.Sub(now); until > 0 {
			delay = until
		}
	}
	if delay > w.config.MaxDelay {
		delay = w.config.MaxDelay
	}

	if err := w.config.Clock.Sleep(ctx, delay); err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrWaitAborted, err, cause)
	}
	return nil
}
