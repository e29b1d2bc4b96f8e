package apiclient

import (
	"fmt"
)

// TransportError reports that the exchange never completed: the connection
// was refused, DNS failed, or the resolved timeout elapsed. The request may
// or may not have reached the server; retrying is the caller's decision,
// never this package's.
type TransportError struct {
	Op  string // "dial", "send", "read"
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError reports that the API rejected the presented token as invalid or
// expired. It is recoverable: the session clears the stored token, renews,
// and retries the call once. Callers only ever see an AuthError when that
// retry failed the same way.
type AuthError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth rejected (%d %s): %s", e.StatusCode, e.Code, e.Message)
}

// APIError reports an application-level rejection unrelated to
// authentication. Code and Details are the API's own error pair, passed
// through for the caller to interpret. Never retried automatically.
type APIError struct {
	StatusCode int
	Code       string
	Details    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d %s): %s", e.StatusCode, e.Code, e.Details)
}

// HTTPError reports a non-2xx status that the API's classifier did not
// claim. Never retried automatically.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.StatusCode, truncate(e.Body, 256))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
