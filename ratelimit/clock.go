package ratelimit

import (
	"context"
	"time"
)

// Clock abstracts time for wait-style handlers so tests can substitute a
// deterministic implementation.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Sleep must return ctx.Err() promptly when the context ends.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep suspends the calling goroutine for d, or until the context
	// is done. A non-positive d returns immediately.
	Sleep(ctx context.Context, d time.Duration) error
}

// systemClock is the real-time Clock.
type systemClock struct{}

// SystemClock returns the real-time Clock used by default.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
