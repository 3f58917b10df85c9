// Package exchange models a finalized HTTP request/response pair.
//
// An Exchange is a pure view over data that has already been received: it
// performs no network activity and every metadata accessor can be called
// any number of times with identical results. Exactly one of the body and
// the error body is readable, depending on whether the exchange succeeded.
//
// A FinalizedConn wraps an Exchange for handing to rate-limit handlers. It
// exposes the read-only accessor surface of a connection whose exchange has
// completed, and rejects every operation that only makes sense on a live
// connection. Handlers are given this guard specifically so that a buggy
// policy cannot silently mutate a request that has already been dispatched.
package exchange
