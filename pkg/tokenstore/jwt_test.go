package tokenstore

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("jwt with exp claim", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "svc",
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		signed, err := tok.SignedString([]byte("test-key"))
		require.NoError(t, err)

		got, ok := JWTExpiry(signed)
		require.True(t, ok)
		require.True(t, got.Equal(exp))
	})

	t.Run("jwt without exp claim", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "svc",
		})
		signed, err := tok.SignedString([]byte("test-key"))
		require.NoError(t, err)

		_, ok := JWTExpiry(signed)
		require.False(t, ok)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, ok := JWTExpiry("not-a-jwt")
		require.False(t, ok)
	})
}
