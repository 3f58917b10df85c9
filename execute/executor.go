package execute

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/jonwraymond/limitgate/exchange"
	"github.com/jonwraymond/limitgate/observe"
	"github.com/jonwraymond/limitgate/ratelimit"
)

// Config configures an Executor.
type Config struct {
	// Transport performs one network attempt per call. Required.
	Transport Transport

	// Handler decides what to do on classified rate-limit exhaustion.
	// Default: ratelimit.Fail
	Handler ratelimit.Handler

	// Classifier decides whether a failed exchange is exhaustion.
	// Default: ratelimit.NewClassifier(ratelimit.ClassifierConfig{})
	Classifier *ratelimit.Classifier

	// MaxAttempts bounds the total attempts per logical request,
	// including the first. Crossing it fails with ErrRetriesExhausted.
	// Default: 3
	MaxAttempts int

	// Limiter paces outgoing attempts client-side. Optional.
	Limiter *rate.Limiter

	// Counter is incremented once per Transport.Send call. Optional.
	Counter *Counter

	// Quota receives the parsed quota record of every classified
	// rate-limit failure, keyed by host. Optional, advisory only.
	Quota *ratelimit.QuotaCache

	// Clock supplies the current time for quota record parsing.
	// Default: ratelimit.SystemClock()
	Clock ratelimit.Clock

	// Middleware instruments each attempt. Default: observe.NopMiddleware()
	Middleware *observe.Middleware
}

// Executor drives requests through the bounded retry loop. It holds no
// per-request mutable state: concurrent Do calls are independent.
type Executor struct {
	config Config
}

// New creates an Executor, applying defaults.
func New(config Config) (*Executor, error) {
	if config.Transport == nil {
		return nil, ErrNilTransport
	}
	if config.Handler == nil {
		config.Handler = ratelimit.Fail
	}
	if config.Classifier == nil {
		config.Classifier = ratelimit.NewClassifier(ratelimit.ClassifierConfig{})
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.Clock == nil {
		config.Clock = ratelimit.SystemClock()
	}
	if config.Middleware == nil {
		config.Middleware = observe.NopMiddleware()
	}
	return &Executor{config: config}, nil
}

// Config returns the executor configuration.
func (e *Executor) Config() Config {
	return e.config
}

// Do executes req, retrying on classified rate-limit exhaustion as directed
// by the handler. Retries are sequential: exactly one network call per loop
// iteration, never concurrent attempts for the same logical request.
//
// On success the finalized Exchange is returned. On failure the error chain
// always contains the original HTTP failure: *TransportError for network
// errors, *HTTPError for non-rate-limit statuses, *ratelimit.LimitError
// (possibly wrapped by the handler or by ErrRetriesExhausted) for
// exhaustion.
//
// Requests with a body must have GetBody set so attempts are replayable;
// http.NewRequest does this for common body types.
func (e *Executor) Do(ctx context.Context, req *http.Request) (*exchange.Exchange, error) {
	if req == nil || req.URL == nil {
		return nil, ErrNilRequest
	}

	var lastErr error
	for attempt := 1; attempt <= e.config.MaxAttempts; attempt++ {
		meta := observe.RequestMeta{
			Method:  req.Method,
			Host:    req.URL.Host,
			Path:    req.URL.Path,
			Attempt: attempt,
		}

		var ex *exchange.Exchange
		var limitErr *ratelimit.LimitError

		attemptFn := func(ctx context.Context, meta observe.RequestMeta) (observe.Outcome, error) {
			if e.config.Limiter != nil {
				if err := e.config.Limiter.Wait(ctx); err != nil {
					return observe.OutcomeTransportError, &TransportError{
						Method: req.Method,
						URL:    req.URL.String(),
						Cause:  err,
					}
				}
			}

			if e.config.Counter != nil {
				e.config.Counter.Inc()
			}

			var err error
			ex, err = e.config.Transport.Send(ctx, req)
			if err != nil {
				return observe.OutcomeTransportError, &TransportError{
					Method: req.Method,
					URL:    req.URL.String(),
					Cause:  err,
				}
			}
			if !ex.Failed() {
				return observe.OutcomeSuccess, nil
			}

			httpErr := &HTTPError{Exchange: ex}
			if !e.config.Classifier.IsExhausted(ex) {
				return observe.OutcomeHTTPError, httpErr
			}

			limitErr = &ratelimit.LimitError{Cause: httpErr}
			if rec, ok := e.config.Classifier.Record(ex, e.config.Clock.Now()); ok {
				limitErr.Record = rec
				if e.config.Quota != nil {
					e.config.Quota.Observe(req.URL.Host, rec)
				}
			}
			return observe.OutcomeRateLimited, limitErr
		}

		outcome, err := e.config.Middleware.Wrap(attemptFn)(ctx, meta)
		if err == nil {
			return ex, nil
		}
		if outcome != observe.OutcomeRateLimited {
			// Transport and non-rate-limit HTTP failures never reach
			// the handler.
			return nil, err
		}

		// The handler borrows the finalized connection for this call only.
		conn := exchange.Finalize(ex)
		if herr := e.config.Handler.OnLimitExceeded(ctx, limitErr, conn); herr != nil {
			return nil, herr
		}

		lastErr = limitErr
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, e.config.MaxAttempts, lastErr)
}
