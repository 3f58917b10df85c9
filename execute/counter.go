package execute

import "sync/atomic"

// Counter counts Transport.Send calls. It exists for observability and for
// verifying retry-loop behavior in tests: the count is the number of real
// network attempts made.
//
// Contract:
// - Concurrency: safe for concurrent use.
type Counter struct {
	n atomic.Int64
}

// Inc increments the counter and returns the new value.
func (c *Counter) Inc() int64 {
	return c.n.Add(1)
}

// Count returns the current value.
func (c *Counter) Count() int64 {
	return c.n.Load()
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.n.Store(0)
}
