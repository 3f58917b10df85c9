package exchange

import "errors"

// Sentinel errors for exchange operations.
var (
	// ErrUnsupported is returned by every live-connection operation on a
	// FinalizedConn. The exchange is complete; there is nothing to mutate.
	ErrUnsupported = errors.New("exchange: operation not supported on a finalized connection")

	// ErrNoBody is returned by Body on a failed exchange. The error body
	// is readable instead.
	ErrNoBody = errors.New("exchange: request failed, response has no body")

	// ErrNilResponse indicates FromResponse was given a nil response.
	ErrNilResponse = errors.New("exchange: response is nil")
)
