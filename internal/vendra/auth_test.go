package vendra

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/clientelehq/clientele/pkg/apiclient"

	"github.com/stretchr/testify/require"
)

func TestExpiryTTL(t *testing.T) {
	t.Parallel()

	t.Run("zone-less timestamp read as Sao Paulo time", func(t *testing.T) {
		// 12:00 in Sao Paulo (-03:00) is 15:00 UTC.
		now := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

		ttl, err := expiryTTL("2024-06-01T12:00:00", now)
		require.NoError(t, err)
		require.Equal(t, time.Hour, ttl)
	})

	t.Run("past expiry yields negative ttl", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)

		ttl, err := expiryTTL("2024-06-01T12:00:00", now)
		require.NoError(t, err)
		require.Negative(t, ttl)
	})

	t.Run("empty timestamp means unknown expiry", func(t *testing.T) {
		ttl, err := expiryTTL("", time.Now())
		require.NoError(t, err)
		require.Zero(t, ttl)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		_, err := expiryTTL("June 1st", time.Now())
		require.Error(t, err)
	})
}

func TestRenewFunc(t *testing.T) {
	t.Parallel()

	creds := Credentials{Email: "a@b.c", PublicKey: "pub", APIKey: "key"}

	t.Run("exchanges credentials for a token", func(t *testing.T) {
		var (
			mu                           sync.Mutex
			gotMethod, gotPath, gotQuery string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"data":{"token":"fresh","token_valid_until":"2024-06-01T12:00:00"}}`)
		}))
		defer server.Close()

		renew := newRenewFunc(server.URL, creds, slog.Default())

		now := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
		token, ttl, err := renew(context.Background(), now)
		require.NoError(t, err)
		require.Equal(t, "fresh", token)
		require.Equal(t, time.Hour, ttl)

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, http.MethodPost, gotMethod)
		require.Equal(t, authPath, gotPath)
		require.Equal(t, "apikey=key&email=a%40b.c&publickey=pub", gotQuery)
	})

	t.Run("non-2xx is a fatal renewal failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer server.Close()

		renew := newRenewFunc(server.URL, creds, slog.Default())

		_, _, err := renew(context.Background(), time.Now())
		require.Error(t, err)

		var httpErr *apiclient.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":{"token":"","token_valid_until":""}}`)
		}))
		defer server.Close()

		renew := newRenewFunc(server.URL, creds, slog.Default())

		_, _, err := renew(context.Background(), time.Now())
		require.ErrorContains(t, err, "empty token")
	})
}
