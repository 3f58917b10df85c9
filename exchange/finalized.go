package exchange

import (
	"fmt"
	"io"
	"net/url"
	"time"
)

// FinalizedConn is the connection surface of a completed exchange.
//
// Read accessors delegate to the underlying Exchange. Every operation that
// implies an in-progress or mutable connection returns ErrUnsupported on
// every call; no call count or ordering turns one into a no-op. Disconnect
// is the single exception: disconnecting a finished exchange is safe, so it
// is an idempotent no-op that never fails.
//
// Contract:
// - Concurrency: safe for concurrent use; the exchange is immutable.
// - Ownership: the guard borrows the Exchange, it does not copy it.
type FinalizedConn struct {
	ex *Exchange
}

// Finalize wraps a completed exchange in a FinalizedConn.
func Finalize(ex *Exchange) *FinalizedConn {
	return &FinalizedConn{ex: ex}
}

// Exchange returns the underlying exchange.
func (c *FinalizedConn) Exchange() *Exchange {
	return c.ex
}

// Method returns the request method.
func (c *FinalizedConn) Method() string { return c.ex.Method() }

// URL returns the request URL.
func (c *FinalizedConn) URL() *url.URL { return c.ex.URL() }

// Status returns the response status code and status text.
func (c *FinalizedConn) Status() (int, string) { return c.ex.Status() }

// Header returns the named response header, case-insensitively.
func (c *FinalizedConn) Header(name string) string { return c.ex.Header(name) }

// HeaderInt parses the named header as an int, with def as fallback.
func (c *FinalizedConn) HeaderInt(name string, def int) int { return c.ex.HeaderInt(name, def) }

// HeaderInt64 parses the named header as an int64, with def as fallback.
func (c *FinalizedConn) HeaderInt64(name string, def int64) int64 {
	return c.ex.HeaderInt64(name, def)
}

// AllHeaders returns the ordered response headers, status line at index 0.
func (c *FinalizedConn) AllHeaders() []HeaderField { return c.ex.AllHeaders() }

// HeaderKeyAt returns the header key at index i.
func (c *FinalizedConn) HeaderKeyAt(i int) string { return c.ex.HeaderKeyAt(i) }

// HeaderValueAt returns the header value at index i.
func (c *FinalizedConn) HeaderValueAt(i int) string { return c.ex.HeaderValueAt(i) }

// Date returns the Date header as epoch milliseconds, 0 when absent.
func (c *FinalizedConn) Date() int64 { return c.ex.Date() }

// LastModified returns Last-Modified as epoch milliseconds, 0 when absent.
func (c *FinalizedConn) LastModified() int64 { return c.ex.LastModified() }

// Expiration returns Expires as epoch milliseconds, 0 when absent.
func (c *FinalizedConn) Expiration() int64 { return c.ex.Expiration() }

// IfModifiedSince returns the request If-Modified-Since as epoch
// milliseconds, 0 when absent.
func (c *FinalizedConn) IfModifiedSince() int64 { return c.ex.IfModifiedSince() }

// ContentLength returns the Content-Length, -1 when unknown.
func (c *FinalizedConn) ContentLength() int { return c.ex.ContentLength() }

// ContentType returns the Content-Type header.
func (c *FinalizedConn) ContentType() string { return c.ex.ContentType() }

// ContentEncoding returns the Content-Encoding header.
func (c *FinalizedConn) ContentEncoding() string { return c.ex.ContentEncoding() }

// Body returns the success body reader, or an error on a failed exchange.
// The error repeats identically on every call.
func (c *FinalizedConn) Body() (io.Reader, error) { return c.ex.Body() }

// ErrorBody returns the error body reader, nil on a successful exchange.
func (c *FinalizedConn) ErrorBody() io.Reader { return c.ex.ErrorBody() }

// RequestHeader returns the named request header.
func (c *FinalizedConn) RequestHeader(name string) string { return c.ex.RequestHeader(name) }

// RequestHeaders returns the headers sent on the request, in order.
func (c *FinalizedConn) RequestHeaders() []HeaderField { return c.ex.RequestHeaders() }

// Disconnect releases the connection. The exchange is already complete, so
// this is an idempotent no-op; it may be called any number of times.
func (c *FinalizedConn) Disconnect() {}

func (c *FinalizedConn) unsupported(op string) error {
	return fmt.Errorf("%s: %w", op, ErrUnsupported)
}

// Connect always fails: the exchange already completed.
func (c *FinalizedConn) Connect() error {
	return c.unsupported("connect")
}

// OutputStream always fails: the request was already written.
func (c *FinalizedConn) OutputStream() (io.Writer, error) {
	return nil, c.unsupported("output stream")
}

// SetConnectTimeout always fails on a finalized connection.
func (c *FinalizedConn) SetConnectTimeout(time.Duration) error {
	return c.unsupported("set connect timeout")
}

// ConnectTimeout always fails on a finalized connection.
func (c *FinalizedConn) ConnectTimeout() (time.Duration, error) {
	return 0, c.unsupported("connect timeout")
}

// SetReadTimeout always fails on a finalized connection.
func (c *FinalizedConn) SetReadTimeout(time.Duration) error {
	return c.unsupported("set read timeout")
}

// ReadTimeout always fails on a finalized connection.
func (c *FinalizedConn) ReadTimeout() (time.Duration, error) {
	return 0, c.unsupported("read timeout")
}

// SetRequestHeader always fails: the request was already sent.
func (c *FinalizedConn) SetRequestHeader(key, value string) error {
	return c.unsupported("set request header")
}

// AddRequestHeader always fails: the request was already sent.
func (c *FinalizedConn) AddRequestHeader(key, value string) error {
	return c.unsupported("add request header")
}

// SetRequestMethod always fails: the request was already sent.
func (c *FinalizedConn) SetRequestMethod(method string) error {
	return c.unsupported("set request method")
}

// SetIfModifiedSince always fails: the request was already sent.
func (c *FinalizedConn) SetIfModifiedSince(epochMillis int64) error {
	return c.unsupported("set if-modified-since")
}

// SetFixedLengthStreamingMode always fails on a finalized connection.
func (c *FinalizedConn) SetFixedLengthStreamingMode(length int64) error {
	return c.unsupported("set fixed length streaming mode")
}

// SetChunkedStreamingMode always fails on a finalized connection.
func (c *FinalizedConn) SetChunkedStreamingMode(chunkLen int) error {
	return c.unsupported("set chunked streaming mode")
}

// SetDoInput always fails on a finalized connection.
func (c *FinalizedConn) SetDoInput(bool) error {
	return c.unsupported("set do input")
}

// DoInput always fails on a finalized connection.
func (c *FinalizedConn) DoInput() (bool, error) {
	return false, c.unsupported("do input")
}

// SetDoOutput always fails on a finalized connection.
func (c *FinalizedConn) SetDoOutput(bool) error {
	return c.unsupported("set do output")
}

// DoOutput always fails on a finalized connection.
func (c *FinalizedConn) DoOutput() (bool, error) {
	return false, c.unsupported("do output")
}

// SetUseCaches always fails on a finalized connection.
func (c *FinalizedConn) SetUseCaches(bool) error {
	return c.unsupported("set use caches")
}

// UseCaches always fails on a finalized connection.
func (c *FinalizedConn) UseCaches() (bool, error) {
	return false, c.unsupported("use caches")
}

// SetDefaultUseCaches always fails on a finalized connection.
func (c *FinalizedConn) SetDefaultUseCaches(bool) error {
	return c.unsupported("set default use caches")
}

// DefaultUseCaches always fails on a finalized connection.
func (c *FinalizedConn) DefaultUseCaches() (bool, error) {
	return false, c.unsupported("default use caches")
}

// SetAllowUserInteraction always fails on a finalized connection.
func (c *FinalizedConn) SetAllowUserInteraction(bool) error {
	return c.unsupported("set allow user interaction")
}

// AllowUserInteraction always fails on a finalized connection.
func (c *FinalizedConn) AllowUserInteraction() (bool, error) {
	return false, c.unsupported("allow user interaction")
}

// SetFollowRedirects always fails on a finalized connection.
func (c *FinalizedConn) SetFollowRedirects(bool) error {
	return c.unsupported("set follow redirects")
}

// FollowRedirects always fails on a finalized connection.
func (c *FinalizedConn) FollowRedirects() (bool, error) {
	return false, c.unsupported("follow redirects")
}

// UsingProxy always fails on a finalized connection.
func (c *FinalizedConn) UsingProxy() (bool, error) {
	return false, c.unsupported("using proxy")
}

// Permission always fails on a finalized connection.
func (c *FinalizedConn) Permission() (string, error) {
	return "", c.unsupported("permission")
}
