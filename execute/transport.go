package execute

import (
	"context"
	"net/http"

	"github.com/jonwraymond/limitgate/exchange"
)

// Transport performs exactly one real network attempt per Send call.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Send must honor cancellation/deadlines.
// - Errors: a returned error means no usable response exists; a non-2xx
//   response is NOT an error, it finalizes as a failed Exchange.
type Transport interface {
	Send(ctx context.Context, req *http.Request) (*exchange.Exchange, error)
}

// HTTPTransport adapts *http.Client to the Transport interface.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a Transport over client. A nil client uses
// http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

// Send issues the request once and finalizes the response into an Exchange.
// The request is cloned with ctx so retries of the same logical request do
// not share context state.
func (t *HTTPTransport) Send(ctx context.Context, req *http.Request) (*exchange.Exchange, error) {
	req = req.Clone(ctx)

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	return exchange.FromResponse(req, res)
}

var _ Transport = (*HTTPTransport)(nil)
