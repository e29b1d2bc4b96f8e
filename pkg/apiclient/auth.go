package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/clientelehq/clientele/pkg/clockx"
	"github.com/clientelehq/clientele/pkg/slogx"
	"github.com/clientelehq/clientele/pkg/tokenstore"

	"golang.org/x/sync/singleflight"
)

// Authenticator attaches proof of identity to outgoing requests and
// recovers from the API rejecting that proof.
type Authenticator interface {
	// Authorize makes req carry a valid token, acquiring one first if the
	// store is empty or the stored token has expired.
	Authorize(ctx context.Context, req *http.Request) error

	// Recover discards the stored token and forces a fresh renewal. The
	// session calls it at most once per logical call, after observing a
	// recoverable auth rejection.
	Recover(ctx context.Context) error
}

// RenewFunc exchanges long-lived credentials for a fresh token. It reports
// the token value and its lifetime relative to now. Implementations must
// use their own bare transport; renewing through an authorized session
// would recurse.
type RenewFunc func(ctx context.Context, now time.Time) (value string, ttl time.Duration, err error)

// AttachFunc writes the token onto an outgoing request. The default uses
// the standard bearer scheme; APIs with their own header convention
// override it.
type AttachFunc func(req *http.Request, token string)

// BearerAttach sets a standard Authorization: Bearer header.
func BearerAttach(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAttach returns an AttachFunc carrying the token in a custom header.
func HeaderAttach(name string) AttachFunc {
	return func(req *http.Request, token string) {
		req.Header.Set(name, token)
	}
}

// TokenAuth is the recoverable authenticator: it owns a token store, renews
// through a RenewFunc when the stored token is absent or expired, and
// serializes renewal so concurrent callers share one network call.
type TokenAuth struct {
	store  tokenstore.Store
	renew  RenewFunc
	attach AttachFunc
	clock  clockx.Clock

	group singleflight.Group
}

type TokenAuthOption func(*TokenAuth)

// WithAttach overrides how the token is written onto requests.
func WithAttach(fn AttachFunc) TokenAuthOption {
	return func(a *TokenAuth) { a.attach = fn }
}

// WithAuthClock overrides the time source used for expiry arithmetic.
func WithAuthClock(c clockx.Clock) TokenAuthOption {
	return func(a *TokenAuth) { a.clock = c }
}

// NewTokenAuth returns an authenticator over store. The store is owned by
// the authenticator; nothing else should mutate it.
func NewTokenAuth(store tokenstore.Store, renew RenewFunc, opts ...TokenAuthOption) *TokenAuth {
	a := &TokenAuth{
		store:  store,
		renew:  renew,
		attach: BearerAttach,
		clock:  clockx.Real{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *TokenAuth) Authorize(ctx context.Context, req *http.Request) error {
	now := a.clock.Now()

	// Fast path: a valid stored token, no network.
	tok, ok, err := a.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}
	if ok && tok.Valid(now) {
		a.attach(req, tok.Value)
		return nil
	}

	tok, err = a.renewToken(ctx)
	if err != nil {
		return err
	}
	a.attach(req, tok.Value)
	return nil
}

func (a *TokenAuth) Recover(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("token store: %w", err)
	}
	slogx.FromContext(ctx).Debug("auth: cleared rejected token, renewing")

	_, err := a.renewToken(ctx)
	return err
}

// renewToken performs one renewal through the singleflight group: when
// several calls observe an invalid token at once, one renewal reaches the
// authentication endpoint and every caller shares its result.
func (a *TokenAuth) renewToken(ctx context.Context) (tokenstore.Token, error) {
	v, err, shared := a.group.Do("renew", func() (any, error) {
		now := a.clock.Now()

		value, ttl, err := a.renew(ctx, now)
		if err != nil {
			return nil, err
		}

		tok := tokenstore.Token{Value: value}
		switch {
		case ttl > 0:
			tok.ExpiresAt = now.Add(ttl)
		default:
			// The issuer reported no lifetime; a JWT exp claim is the next
			// best hint. Failing that the token has no known expiry.
			if exp, ok := tokenstore.JWTExpiry(value); ok {
				tok.ExpiresAt = exp
			}
		}

		if err := a.store.Set(ctx, tok); err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}

		slogx.FromContext(ctx).Debug("auth: renewed token",
			"expires_at", tok.ExpiresAt)
		return tok, nil
	})
	if err != nil {
		return tokenstore.Token{}, err
	}
	if shared {
		slogx.FromContext(ctx).Debug("auth: reused in-flight renewal")
	}
	return v.(tokenstore.Token), nil
}

// NoAuth is an Authenticator for unauthenticated sessions, such as the bare
// session a RenewFunc uses to reach the authentication endpoint.
type NoAuth struct{}

func (NoAuth) Authorize(context.Context, *http.Request) error { return nil }
func (NoAuth) Recover(context.Context) error                  { return nil }
