package exchange

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// HeaderField is a single header entry. Response header lists keep the
// status line at index 0 under an empty key.
type HeaderField struct {
	Key   string
	Value string
}

// Config describes an exchange for literal construction, primarily in tests.
// FromResponse is the usual production path.
type Config struct {
	// Method is the request method. Default: GET.
	Method string

	// URL is the request URL.
	URL *url.URL

	// RequestHeaders are the headers sent on the request, in order.
	RequestHeaders []HeaderField

	// StatusCode is the response status code. Default: 200.
	StatusCode int

	// Status is the status text, e.g. "403 Forbidden".
	// Default: derived from StatusCode.
	Status string

	// Proto is the protocol of the status line. Default: HTTP/1.1.
	Proto string

	// Headers are the response headers in wire order, without the
	// status line (it is synthesized at index 0).
	Headers []HeaderField

	// Body is the response body of a successful exchange.
	Body []byte

	// ErrorBody is the response body of a failed exchange.
	ErrorBody []byte
}

// Exchange is one finalized request/response pair. It is immutable after
// construction and owns copies of all captured data.
type Exchange struct {
	method     string
	url        *url.URL
	reqHeaders []HeaderField

	statusCode int
	status     string
	statusLine string
	headers    []HeaderField // index 0 is the status line with an empty key

	body    []byte
	errBody []byte
	failed  bool
}

// New builds an Exchange from a Config, applying defaults. The exchange is
// failed when the status code is outside 2xx.
func New(cfg Config) *Exchange {
	if cfg.Method == "" {
		cfg.Method = http.MethodGet
	}
	if cfg.StatusCode == 0 {
		cfg.StatusCode = http.StatusOK
	}
	if cfg.Status == "" {
		cfg.Status = fmt.Sprintf("%d %s", cfg.StatusCode, http.StatusText(cfg.StatusCode))
	}
	if cfg.Proto == "" {
		cfg.Proto = "HTTP/1.1"
	}

	ex := &Exchange{
		method:     cfg.Method,
		url:        cfg.URL,
		reqHeaders: append([]HeaderField(nil), cfg.RequestHeaders...),
		statusCode: cfg.StatusCode,
		status:     cfg.Status,
		statusLine: cfg.Proto + " " + cfg.Status,
		failed:     cfg.StatusCode < 200 || cfg.StatusCode > 299,
	}

	ex.headers = make([]HeaderField, 0, len(cfg.Headers)+1)
	ex.headers = append(ex.headers, HeaderField{Key: "", Value: ex.statusLine})
	ex.headers = append(ex.headers, cfg.Headers...)

	if ex.failed {
		ex.errBody = append([]byte(nil), cfg.ErrorBody...)
	} else {
		ex.body = append([]byte(nil), cfg.Body...)
	}
	return ex
}

// FromResponse drains res and finalizes it into an Exchange. The response
// body is fully consumed and closed; the exchange owns the bytes from then
// on. A non-2xx status finalizes as a failed exchange whose body is only
// readable through ErrorBody.
func FromResponse(req *http.Request, res *http.Response) (*Exchange, error) {
	if res == nil {
		return nil, ErrNilResponse
	}

	var body []byte
	if res.Body != nil {
		var err error
		body, err = io.ReadAll(res.Body)
		_ = res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("exchange: reading response body: %w", err)
		}
	}

	cfg := Config{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Proto:      res.Proto,
		Headers:    flatten(res.Header),
	}
	if req != nil {
		cfg.Method = req.Method
		cfg.URL = req.URL
		cfg.RequestHeaders = flatten(req.Header)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		cfg.ErrorBody = body
	} else {
		cfg.Body = body
	}
	return New(cfg), nil
}

// flatten converts an http.Header map to an ordered list. The wire order is
// lost by net/http, so keys are sorted for deterministic addressing.
func flatten(h http.Header) []HeaderField {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields []HeaderField
	for _, k := range keys {
		for _, v := range h[k] {
			fields = append(fields, HeaderField{Key: k, Value: v})
		}
	}
	return fields
}

// Failed reports whether the exchange completed with a non-2xx status.
func (e *Exchange) Failed() bool {
	return e.failed
}

// Method returns the request method.
func (e *Exchange) Method() string {
	return e.method
}

// URL returns the request URL. It may be nil for literal exchanges.
func (e *Exchange) URL() *url.URL {
	return e.url
}

// Status returns the response status code and status text,
// e.g. 403, "403 Forbidden".
func (e *Exchange) Status() (int, string) {
	return e.statusCode, e.status
}

// StatusLine returns the full status line, e.g. "HTTP/1.1 403 Forbidden".
func (e *Exchange) StatusLine() string {
	return e.statusLine
}

// Header returns the value of the named response header, matching
// case-insensitively. When the header appears more than once the last
// occurrence wins. Returns "" when absent.
func (e *Exchange) Header(name string) string {
	var val string
	for _, f := range e.headers[1:] {
		if strings.EqualFold(f.Key, name) {
			val = f.Value
		}
	}
	return val
}

// HeaderInt parses the named header as an int, returning def when the
// header is absent or unparsable.
func (e *Exchange) HeaderInt(name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(e.Header(name)))
	if err != nil {
		return def
	}
	return v
}

// HeaderInt64 parses the named header as an int64, returning def when the
// header is absent or unparsable.
func (e *Exchange) HeaderInt64(name string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(e.Header(name)), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// AllHeaders returns the ordered response header list. Index 0 is the
// status line under an empty key. The returned slice is a copy.
func (e *Exchange) AllHeaders() []HeaderField {
	return append([]HeaderField(nil), e.headers...)
}

// HeaderKeyAt returns the header key at index i. Index 0 is the status
// line and has an empty key. Out-of-range indexes return "".
func (e *Exchange) HeaderKeyAt(i int) string {
	if i < 0 || i >= len(e.headers) {
		return ""
	}
	return e.headers[i].Key
}

// HeaderValueAt returns the header value at index i. Index 0 is the full
// status line. Out-of-range indexes return "".
func (e *Exchange) HeaderValueAt(i int) string {
	if i < 0 || i >= len(e.headers) {
		return ""
	}
	return e.headers[i].Value
}

// Date returns the Date header as epoch milliseconds, or 0 when absent or
// malformed.
func (e *Exchange) Date() int64 {
	return e.headerTime("Date")
}

// LastModified returns the Last-Modified header as epoch milliseconds, or 0
// when absent or malformed.
func (e *Exchange) LastModified() int64 {
	return e.headerTime("Last-Modified")
}

// Expiration returns the Expires header as epoch milliseconds, or 0 when
// absent or malformed.
func (e *Exchange) Expiration() int64 {
	return e.headerTime("Expires")
}

// IfModifiedSince returns the If-Modified-Since header sent on the request
// as epoch milliseconds, or 0 when absent or malformed.
func (e *Exchange) IfModifiedSince() int64 {
	v := e.RequestHeader("If-Modified-Since")
	if v == "" {
		return 0
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

func (e *Exchange) headerTime(name string) int64 {
	v := e.Header(name)
	if v == "" {
		return 0
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// ContentLength returns the Content-Length header as an int, or -1 when
// unknown.
func (e *Exchange) ContentLength() int {
	return e.HeaderInt("Content-Length", -1)
}

// ContentType returns the Content-Type header, or "" when absent.
func (e *Exchange) ContentType() string {
	return e.Header("Content-Type")
}

// ContentEncoding returns the Content-Encoding header, or "" when absent.
func (e *Exchange) ContentEncoding() string {
	return e.Header("Content-Encoding")
}

// Body returns a reader over the response body of a successful exchange.
// On a failed exchange it returns ErrNoBody, on every call; the failure is
// idempotent and never consumes anything. Each successful call returns a
// fresh reader over the same captured bytes.
func (e *Exchange) Body() (io.Reader, error) {
	if e.failed {
		return nil, fmt.Errorf("%w: %s", ErrNoBody, e.status)
	}
	return bytes.NewReader(e.body), nil
}

// ErrorBody returns a reader over the error body of a failed exchange, or
// nil when the exchange succeeded. Each call returns a fresh reader over
// the same captured bytes.
func (e *Exchange) ErrorBody() io.Reader {
	if !e.failed {
		return nil
	}
	return bytes.NewReader(e.errBody)
}

// RequestHeader returns the value of the named request header, matching
// case-insensitively. Returns "" when absent.
func (e *Exchange) RequestHeader(name string) string {
	for _, f := range e.reqHeaders {
		if strings.EqualFold(f.Key, name) {
			return f.Value
		}
	}
	return ""
}

// RequestHeaders returns the headers sent on the request, in order. The
// returned slice is a copy.
func (e *Exchange) RequestHeaders() []HeaderField {
	return append([]HeaderField(nil), e.reqHeaders...)
}
