package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/clientelehq/clientele/pkg/idx"
	"github.com/clientelehq/clientele/pkg/slogx"
)

// RequestIDHeader carries the per-call ULID on every outgoing request.
const RequestIDHeader = "X-Request-ID"

// Session is the transport-facing layer: it resolves the effective timeout
// for each call, authorizes the request, dispatches it, and classifies the
// outcome. Safe for concurrent use.
type Session struct {
	baseURL  string
	timeout  TimeoutSpec
	doer     Doer
	auth     Authenticator
	classify Classifier
	logger   *slog.Logger
}

type SessionOption func(*Session)

// WithTimeout sets the session-level default timeout, applied to every call
// that does not carry its own.
func WithTimeout(t TimeoutSpec) SessionOption {
	return func(s *Session) { s.timeout = t }
}

// WithAuth sets the authenticator applied to every outgoing request.
func WithAuth(a Authenticator) SessionOption {
	return func(s *Session) { s.auth = a }
}

// WithClassifier sets the outcome classifier for this API's error shape.
func WithClassifier(c Classifier) SessionOption {
	return func(s *Session) { s.classify = c }
}

// WithDoer substitutes the transport, mainly for tests.
func WithDoer(d Doer) SessionOption {
	return func(s *Session) { s.doer = d }
}

// WithLogger sets the logger attached to each call's context.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession returns a session rooted at baseURL. Without options it is
// unauthenticated, has no timeout and classifies any non-2xx as HTTPError.
func NewSession(baseURL string, opts ...SessionOption) *Session {
	s := &Session{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		doer:     NewHTTPDoer(),
		auth:     NoAuth{},
		classify: DefaultClassifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the session's base URL without a trailing slash.
func (s *Session) BaseURL() string { return s.baseURL }

type callOptions struct {
	timeout TimeoutSpec
	query   url.Values
	headers http.Header
	json    any
	hasJSON bool
}

type RequestOption func(*callOptions)

// WithCallTimeout overrides the session timeout for this call only. Pass
// NoTimeout() to explicitly disable the timeout even when the session has a
// default.
func WithCallTimeout(t TimeoutSpec) RequestOption {
	return func(o *callOptions) { o.timeout = t }
}

// WithQuery adds a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(o *callOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		o.query.Add(key, value)
	}
}

// WithQueryValues merges a full set of query parameters.
func WithQueryValues(values url.Values) RequestOption {
	return func(o *callOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		for k, vs := range values {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithJSON sends v as the JSON request body.
func WithJSON(v any) RequestOption {
	return func(o *callOptions) {
		o.json = v
		o.hasJSON = true
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Add(key, value)
	}
}

// Get issues a GET request through the session.
func (s *Session) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return s.Request(ctx, http.MethodGet, path, opts...)
}

// Post issues a POST request through the session.
func (s *Session) Post(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return s.Request(ctx, http.MethodPost, path, opts...)
}

// Request performs one logical call: resolve the timeout, build and
// authorize the request, dispatch, classify. On a recoverable auth
// rejection it gives the authenticator one chance to renew and retries the
// dispatch exactly once; every other outcome propagates as-is.
func (s *Session) Request(ctx context.Context, method, path string, opts ...RequestOption) (*Response, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	timeout := ResolveTimeout(co.timeout, s.timeout)

	// The body is marshaled once and replayed from bytes on the retry.
	var body []byte
	if co.hasJSON {
		var err error
		body, err = json.Marshal(co.json)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	reqID := idx.New()
	ctx = slogx.WithContext(ctx, s.logger)
	ctx = slogx.WithRequestID(ctx, reqID.String())
	log := slogx.FromContext(ctx)

	for attempt := 1; ; attempt++ {
		req, err := s.newRequest(ctx, method, path, co, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set(RequestIDHeader, reqID.String())

		if err := s.auth.Authorize(ctx, req); err != nil {
			return nil, err
		}

		resp, err := s.dispatch(req, timeout)
		if err != nil {
			return nil, err
		}

		cerr := s.classify.Classify(resp.StatusCode, resp.Body())
		if cerr == nil {
			return resp, nil
		}

		var authErr *AuthError
		if attempt == 1 && errors.As(cerr, &authErr) {
			log.Debug("session: token rejected, renewing and retrying once",
				"status", authErr.StatusCode, "code", authErr.Code)
			if rerr := s.auth.Recover(ctx); rerr != nil {
				return nil, rerr
			}
			continue
		}
		return nil, cerr
	}
}

// newRequest builds a transport-ready request. Called once per attempt so a
// retried call never reuses a consumed body reader.
func (s *Session) newRequest(ctx context.Context, method, path string, co callOptions, body []byte) (*http.Request, error) {
	target := s.baseURL + path
	if len(co.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + co.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range co.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// dispatch performs one exchange and drains the body. A failure before a
// status line, or while reading the body, is a TransportError; it never
// reaches classification.
func (s *Session) dispatch(req *http.Request, timeout TimeoutSpec) (*Response, error) {
	raw, err := s.doer.Do(req, timeout)
	if err != nil {
		return nil, &TransportError{Op: "send", URL: req.URL.String(), Err: err}
	}
	defer raw.Body.Close()

	body, err := io.ReadAll(raw.Body)
	if err != nil {
		return nil, &TransportError{Op: "read", URL: req.URL.String(), Err: err}
	}
	return newResponse(raw, req, body), nil
}
