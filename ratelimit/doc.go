// Package ratelimit classifies rate-limit-exhaustion failures and decides
// what to do about them.
//
// A Classifier inspects a failed exchange and determines whether it
// represents quota exhaustion, as opposed to an auth failure, a missing
// resource, or a server error. Only classified exhaustion reaches a
// Handler; everything else propagates to the caller untouched.
//
// A Handler is the pluggable policy invoked on exhaustion. Returning nil
// signals "retry now"; returning an error propagates it. Two policies ship
// with the package:
//
//   - Fail propagates the classified failure immediately, no delay.
//   - Wait sleeps until the advertised reset time, then signals retry.
//
// Custom policies implement Handler (or wrap a func in HandlerFunc) and get
// full inspection access to the finalized connection:
//
//	handler := ratelimit.HandlerFunc(func(ctx context.Context, cause error, conn *exchange.FinalizedConn) error {
//	    log.Printf("limited until %d", conn.HeaderInt64("X-RateLimit-Reset", 0))
//	    return nil // retry
//	})
//
// The package also carries a QuotaCache: advisory, read-only quota state
// shared across requests. The remote service remains the source of truth.
package ratelimit
