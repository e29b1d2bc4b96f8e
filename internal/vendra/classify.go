package vendra

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/clientelehq/clientele/pkg/apiclient"
)

// errorStatuses is the fixed set of codes the API uses for logical errors,
// transport-flavored and business-flavored alike. Their bodies carry a
// {code, details} pair; anything outside the set is a plain HTTP error.
var errorStatuses = map[int]bool{
	400: true, 401: true, 403: true, 404: true,
	405: true, 409: true, 422: true, 500: true,
}

// authCodes are the error codes meaning the token itself was rejected.
// These, and only these, are safe to retry after a renewal.
var authCodes = map[string]bool{
	"TOKEN_EXPIRED": true,
	"INVALID_TOKEN": true,
}

type errorBody struct {
	// code is a string on most endpoints and a bare integer on a few
	// legacy ones.
	Code    json.RawMessage `json:"code"`
	Details string          `json:"details"`
}

// classifier implements the decision tree for Vendra responses: 2xx is
// success; a status in the logical-error set is an AuthError or APIError
// depending on its code; every other status is an HTTPError. Exactly one
// branch matches.
type classifier struct{}

func (classifier) Classify(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	if errorStatuses[status] {
		var parsed errorBody
		if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Code) > 0 {
			code := normalizeCode(parsed.Code)
			if authCodes[code] {
				return &apiclient.AuthError{
					StatusCode: status,
					Code:       code,
					Message:    parsed.Details,
				}
			}
			return &apiclient.APIError{
				StatusCode: status,
				Code:       code,
				Details:    parsed.Details,
			}
		}
		// A logical-error status without a parseable body; fall through.
	}

	return &apiclient.HTTPError{StatusCode: status, Body: body}
}

// normalizeCode renders the string-or-int wire code as a string.
func normalizeCode(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 1 && raw[0] == '"' {
		if s, err := strconv.Unquote(string(raw)); err == nil {
			return s
		}
	}
	return string(raw)
}
