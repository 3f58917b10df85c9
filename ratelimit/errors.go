package ratelimit

import (
	"errors"
	"fmt"
)

// Sentinel errors for rate limit handling.
var (
	// ErrRateLimited marks classified rate-limit exhaustion. Every
	// *LimitError matches it via errors.Is.
	ErrRateLimited = errors.New("ratelimit: rate limit exhausted")

	// ErrWaitAborted is returned when a Wait sleep is cut short by
	// context cancellation.
	ErrWaitAborted = errors.New("ratelimit: wait aborted")
)

// LimitError is a classified rate-limit-exhaustion failure. It wraps the
// original HTTP failure so the caller's cause chain stays intact.
type LimitError struct {
	// Record is the quota state parsed from the response headers.
	// It may be the zero value when the headers were incomplete.
	Record Record

	// Cause is the original failure, never nil.
	Cause error
}

func (e *LimitError) Error() string {
	if e.Record.Limit > 0 {
		return fmt.Sprintf("ratelimit: quota exhausted (limit %d, resets %s): %v",
			e.Record.Limit, e.Record.Reset.Format("15:04:05"), e.Cause)
	}
	return fmt.Sprintf("ratelimit: quota exhausted: %v", e.Cause)
}

// Unwrap returns the original failure.
func (e *LimitError) Unwrap() error {
	return e.Cause
}

// Is matches ErrRateLimited so callers can test the error kind without
// digging out the concrete type.
func (e *LimitError) Is(target error) bool {
	return target == ErrRateLimited
}
