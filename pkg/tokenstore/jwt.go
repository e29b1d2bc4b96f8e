package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTExpiry extracts the exp claim from a JWT-shaped token value without
// verifying its signature. Some APIs issue JWTs but omit the lifetime from
// the token response; the claim is a usable expiry hint in that case.
// Verification is the server's job, not the client's.
//
// Returns false if the value is not a parseable JWT or carries no exp claim.
func JWTExpiry(value string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(value, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
