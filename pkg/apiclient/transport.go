package apiclient

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"
)

// Doer is the transport boundary. It receives a fully built request and the
// resolved timeout for this dispatch and performs one HTTP exchange.
// Connection pooling, TLS and redirects live below this interface; tests
// substitute a capturing implementation.
type Doer interface {
	Do(req *http.Request, timeout TimeoutSpec) (*http.Response, error)
}

// httpDoer dispatches through a *http.Client, enforcing the resolved total
// budget as a context deadline on the request.
type httpDoer struct {
	client *http.Client
}

// NewHTTPDoer returns the stock Doer. The connect phase is additionally
// bounded by the dialer so that a (connect, read) pair fails fast on an
// unreachable host instead of burning the whole budget on the dial.
func NewHTTPDoer() Doer {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &httpDoer{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialContext(dialer),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

type connectTimeoutKey struct{}

// dialContext applies a per-request connect timeout carried in the context,
// falling back to the dialer's own.
func dialContext(d *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if ct, ok := ctx.Value(connectTimeoutKey{}).(time.Duration); ok && ct > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, ct)
			defer cancel()
		}
		return d.DialContext(ctx, network, addr)
	}
}

func (d *httpDoer) Do(req *http.Request, timeout TimeoutSpec) (*http.Response, error) {
	ctx := req.Context()

	if ct, ok := timeout.Connect(); ok {
		ctx = context.WithValue(ctx, connectTimeoutKey{}, ct)
	}

	cancel := context.CancelFunc(func() {})
	if total, ok := timeout.Total(); ok {
		ctx, cancel = context.WithTimeout(ctx, total)
	}

	resp, err := d.client.Do(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}

	// The deadline has to outlive Do: cancelling now would kill the body
	// read. Tie it to the body instead.
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
