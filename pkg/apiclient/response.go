package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response wraps one completed HTTP exchange: status, headers, the fully
// read body and the request that produced it. It lives for the duration of
// a single logical call.
type Response struct {
	StatusCode int
	Header     http.Header

	body    []byte
	request *http.Request

	// decoded memoizes JSON(); the body is parsed at most once.
	decoded    map[string]any
	decodedSet bool
}

func newResponse(raw *http.Response, req *http.Request, body []byte) *Response {
	return &Response{
		StatusCode: raw.StatusCode,
		Header:     raw.Header,
		body:       body,
		request:    req,
	}
}

// Body returns the raw response body.
func (r *Response) Body() []byte { return r.body }

// Request returns the request that produced this response.
func (r *Response) Request() *http.Request { return r.request }

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// JSON returns the body decoded as a generic JSON object, parsing it on
// first use and memoizing the result.
func (r *Response) JSON() (map[string]any, error) {
	if r.decodedSet {
		return r.decoded, nil
	}

	var m map[string]any
	if err := r.Decode(&m); err != nil {
		return nil, err
	}
	r.decoded = m
	r.decodedSet = true
	return m, nil
}

// Classifier turns a completed exchange into an outcome: nil for success or
// one of the typed errors. A session takes a Classifier at construction so
// an API can define its own error shape without subclassing anything.
type Classifier interface {
	Classify(status int, body []byte) error
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(status int, body []byte) error

func (f ClassifierFunc) Classify(status int, body []byte) error { return f(status, body) }

// DefaultClassifier treats every 2xx as success and everything else as an
// HTTPError. APIs with structured error bodies provide their own.
var DefaultClassifier Classifier = ClassifierFunc(func(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return &HTTPError{StatusCode: status, Body: body}
})
