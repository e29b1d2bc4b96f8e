package vendra

import (
	"testing"

	"github.com/clientelehq/clientele/pkg/apiclient"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	c := classifier{}

	t.Run("2xx is success", func(t *testing.T) {
		require.NoError(t, c.Classify(200, []byte(`{"data":{}}`)))
		require.NoError(t, c.Classify(201, nil))
	})

	t.Run("token codes are recoverable auth errors", func(t *testing.T) {
		err := c.Classify(401, []byte(`{"code":"TOKEN_EXPIRED","details":"token expired at 2024-06-01"}`))

		var authErr *apiclient.AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, 401, authErr.StatusCode)
		require.Equal(t, "TOKEN_EXPIRED", authErr.Code)
		require.Equal(t, "token expired at 2024-06-01", authErr.Message)

		err = c.Classify(403, []byte(`{"code":"INVALID_TOKEN","details":"unknown token"}`))
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, "INVALID_TOKEN", authErr.Code)
	})

	t.Run("other codes are api errors", func(t *testing.T) {
		err := c.Classify(422, []byte(`{"code":"SALE_NOT_FOUND","details":"no sale 42"}`))

		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 422, apiErr.StatusCode)
		require.Equal(t, "SALE_NOT_FOUND", apiErr.Code)
		require.Equal(t, "no sale 42", apiErr.Details)
	})

	t.Run("integer wire codes are normalized", func(t *testing.T) {
		err := c.Classify(400, []byte(`{"code":1042,"details":"legacy endpoint"}`))

		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "1042", apiErr.Code)
	})

	t.Run("status outside the logical set is an http error", func(t *testing.T) {
		err := c.Classify(502, []byte(`bad gateway`))

		var httpErr *apiclient.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, 502, httpErr.StatusCode)
	})

	t.Run("logical status with unparseable body is an http error", func(t *testing.T) {
		err := c.Classify(500, []byte(`<html>oops</html>`))

		var httpErr *apiclient.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, 500, httpErr.StatusCode)
	})
}
