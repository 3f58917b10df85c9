package execute

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/limitgate/exchange"
)

// Sentinel errors for request execution.
var (
	// ErrRetriesExhausted is returned when the bounded retry ceiling is
	// crossed. It wraps the last classified rate-limit failure.
	ErrRetriesExhausted = errors.New("execute: rate limit retries exhausted")

	// ErrNilTransport indicates Config.Transport was not provided.
	ErrNilTransport = errors.New("execute: transport is required")

	// ErrNilRequest indicates Do was called with a nil request.
	ErrNilRequest = errors.New("execute: request is nil")
)

// TransportError is a network-level failure: the request never produced a
// usable response. It bypasses the rate-limit handler entirely.
type TransportError struct {
	Method string
	URL    string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("execute: %s %s: %v", e.Method, e.URL, e.Cause)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// HTTPError is a completed exchange with a non-2xx status. It carries the
// finalized exchange so callers can inspect headers and the error body.
type HTTPError struct {
	Exchange *exchange.Exchange
}

func (e *HTTPError) Error() string {
	code, msg := e.Exchange.Status()
	if u := e.Exchange.URL(); u != nil {
		return fmt.Sprintf("execute: %s %s returned %d %s", e.Exchange.Method(), u, code, msg)
	}
	return fmt.Sprintf("execute: %s returned %d %s", e.Exchange.Method(), code, msg)
}

// StatusCode returns the response status code.
func (e *HTTPError) StatusCode() int {
	code, _ := e.Exchange.Status()
	return code
}
