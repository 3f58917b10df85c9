package ratelimit

import (
	"time"

	"github.com/jonwraymond/limitgate/exchange"
)

// Default header names, following the X-RateLimit convention most APIs use.
const (
	DefaultLimitHeader     = "X-RateLimit-Limit"
	DefaultRemainingHeader = "X-RateLimit-Remaining"
	DefaultResetHeader     = "X-RateLimit-Reset"

	retryAfterHeader = "Retry-After"
)

// Headers is the read surface the classifier needs. Both *exchange.Exchange
// and *exchange.FinalizedConn satisfy it.
type Headers interface {
	Header(name string) string
	HeaderInt(name string, def int) int
	HeaderInt64(name string, def int64) int64
}

// Record is advisory quota state parsed from response headers.
type Record struct {
	// Limit is the total request quota, 0 when unknown.
	Limit int

	// Remaining is the unspent quota, never negative when present.
	Remaining int

	// Reset is when the quota window replenishes. Zero when unknown.
	Reset time.Time
}

// ClassifierConfig configures which headers carry quota state.
type ClassifierConfig struct {
	// LimitHeader names the total-quota header.
	// Default: X-RateLimit-Limit
	LimitHeader string

	// RemainingHeader names the remaining-quota header.
	// Default: X-RateLimit-Remaining
	RemainingHeader string

	// ResetHeader names the reset-timestamp header (epoch seconds).
	// Default: X-RateLimit-Reset
	ResetHeader string
}

// Classifier decides whether a failed exchange is rate-limit exhaustion.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier, applying default header names.
func NewClassifier(config ClassifierConfig) *Classifier {
	if config.LimitHeader == "" {
		config.LimitHeader = DefaultLimitHeader
	}
	if config.RemainingHeader == "" {
		config.RemainingHeader = DefaultRemainingHeader
	}
	if config.ResetHeader == "" {
		config.ResetHeader = DefaultResetHeader
	}
	return &Classifier{config: config}
}

// IsExhausted reports whether ex is a rate-limit-exhaustion failure: a
// non-2xx status whose remaining-quota header is present and zero.
// Successful exchanges and failures without the distinguishing header
// (auth, not-found, validation, server errors) are never exhaustion.
func (c *Classifier) IsExhausted(ex *exchange.Exchange) bool {
	if ex == nil || !ex.Failed() {
		return false
	}
	return ex.HeaderInt(c.config.RemainingHeader, -1) == 0
}

// Record parses quota state from h. The boolean is false when none of the
// quota headers are present. Retry-After (delta seconds) is honored as a
// reset hint when the reset header is missing.
func (c *Classifier) Record(h Headers, now time.Time) (Record, bool) {
	limit := h.HeaderInt(c.config.LimitHeader, -1)
	remaining := h.HeaderInt(c.config.RemainingHeader, -1)
	resetEpoch := h.HeaderInt64(c.config.ResetHeader, 0)

	rec := Record{}
	found := false
	if limit >= 0 {
		rec.Limit = limit
		found = true
	}
	if remaining >= 0 {
		rec.Remaining = remaining
		found = true
	}
	if resetEpoch > 0 {
		rec.Reset = time.Unix(resetEpoch, 0)
		found = true
	} else if after := h.HeaderInt(retryAfterHeader, -1); after >= 0 {
		rec.Reset = now.Add(time.Duration(after) * time.Second)
		found = true
	}
	return rec, found
}

// Config returns the classifier configuration.
func (c *Classifier) Config() ClassifierConfig {
	return c.config
}
