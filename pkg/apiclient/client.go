package apiclient

import (
	"context"
	"strings"
)

// Client is a thin facade over a Session: verb-shaped methods bound to a
// path prefix. Sub-clients share the session (and so the credential and
// token) of their root, differing only in prefix. This layer maps logical
// operations to endpoints and deliberately holds no other logic.
type Client struct {
	session *Session
	prefix  string
}

// NewClient returns a client rooted at the session's base URL.
func NewClient(s *Session) *Client {
	return &Client{session: s}
}

// Sub returns a client sharing this client's session under an extended path
// prefix.
func (c *Client) Sub(prefix string) *Client {
	return &Client{
		session: c.session,
		prefix:  c.prefix + strings.TrimSuffix(prefix, "/"),
	}
}

// Session exposes the underlying session.
func (c *Client) Session() *Session { return c.session }

// Get issues a GET under the client's prefix.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.session.Get(ctx, c.prefix+path, opts...)
}

// Post issues a POST under the client's prefix.
func (c *Client) Post(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.session.Post(ctx, c.prefix+path, opts...)
}

// GetJSON issues a GET and decodes the success body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any, opts ...RequestOption) error {
	resp, err := c.Get(ctx, path, opts...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

// PostJSON issues a POST carrying in as the JSON body and decodes the
// success body into out. Either may be nil.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	if in != nil {
		opts = append(opts, WithJSON(in))
	}
	resp, err := c.Post(ctx, path, opts...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}
