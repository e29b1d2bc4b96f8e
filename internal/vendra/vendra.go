// Package vendra is a client for the Vendra sales platform API, built on
// pkg/apiclient. All of the platform's quirks live here: the custom Token
// header, the credential-for-token exchange, the zone-less expiry timestamp
// and the {code, details} error bodies. The endpoint methods themselves are
// thin request-shape mappings with no logic of their own.
package vendra

import (
	"log/slog"
	"time"

	"github.com/clientelehq/clientele/pkg/apiclient"
	"github.com/clientelehq/clientele/pkg/tokenstore"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.vendra.com.br"

const (
	// tokenHeader carries the session token. Vendra predates the bearer
	// scheme and uses its own header.
	tokenHeader = "Token"

	// authPath issues a token in exchange for account credentials.
	authPath = "/credential/generate_token"
)

// Credentials identify a Vendra account. Captured at construction and used
// only as renewal-call input.
type Credentials struct {
	Email     string
	PublicKey string
	APIKey    string
}

// Client is the root Vendra client. Sub-clients share its session, and so
// its credential and token.
type Client struct {
	Users *UsersClient
	Sales *SalesClient

	session *apiclient.Session
}

type config struct {
	baseURL string
	timeout apiclient.TimeoutSpec
	store   tokenstore.Store
	logger  *slog.Logger
}

type Option func(*config)

// WithBaseURL points the client at a different API root, e.g. a sandbox.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = u }
}

// WithTimeout sets the client-level default timeout.
func WithTimeout(t apiclient.TimeoutSpec) Option {
	return func(c *config) { c.timeout = t }
}

// WithStore substitutes the token store, e.g. tokenstore.SQLite so a CLI
// reuses its token across runs.
func WithStore(s tokenstore.Store) Option {
	return func(c *config) { c.store = s }
}

// WithLogger sets the logger attached to every call.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New composes the full client from credentials: token store,
// authenticator, session and sub-clients.
func New(creds Credentials, opts ...Option) *Client {
	cfg := config{
		baseURL: DefaultBaseURL,
		timeout: apiclient.Timeout(30 * time.Second),
		store:   tokenstore.NewMemory(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	auth := apiclient.NewTokenAuth(
		cfg.store,
		newRenewFunc(cfg.baseURL, creds, cfg.logger),
		apiclient.WithAttach(apiclient.HeaderAttach(tokenHeader)),
	)

	session := apiclient.NewSession(cfg.baseURL,
		apiclient.WithTimeout(cfg.timeout),
		apiclient.WithAuth(auth),
		apiclient.WithClassifier(classifier{}),
		apiclient.WithLogger(cfg.logger),
	)

	root := apiclient.NewClient(session)
	return &Client{
		Users:   &UsersClient{api: root.Sub("/user")},
		Sales:   &SalesClient{api: root},
		session: session,
	}
}

// Session exposes the underlying session for ad-hoc calls.
func (c *Client) Session() *apiclient.Session { return c.session }
