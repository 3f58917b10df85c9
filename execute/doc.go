// Package execute drives HTTP requests through a bounded, rate-limit-aware
// retry loop.
//
// An Executor sends a request through a Transport and inspects the result:
//
//   - A 2xx exchange is returned to the caller.
//   - A network-level failure propagates immediately as a *TransportError;
//     it never reaches the rate-limit handler.
//   - A non-2xx exchange that is not rate-limit exhaustion (auth failures,
//     missing resources, server errors) propagates immediately as an
//     *HTTPError.
//   - Classified rate-limit exhaustion is routed to the configured
//     ratelimit.Handler with a finalized connection for inspection. The
//     handler either propagates the failure or signals a retry.
//
// Retries for one logical request are strictly sequential: one in-flight
// call at a time, one network call per loop iteration. The loop is bounded
// by Config.MaxAttempts; a handler that keeps signaling retry without the
// limit window ever passing hits ErrRetriesExhausted rather than looping
// forever. The final error's chain always contains the original HTTP
// failure.
//
// Usage:
//
//	exec, err := execute.New(execute.Config{
//	    Transport: execute.NewHTTPTransport(nil),
//	    Handler:   ratelimit.Wait,
//	})
//	if err != nil {
//	    return err
//	}
//	ex, err := exec.Do(ctx, req)
package execute
