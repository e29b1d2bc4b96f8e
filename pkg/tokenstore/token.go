// Package tokenstore holds the current authentication token and its expiry.
// A store owns zero or one Token: created empty, populated on the first
// successful renewal, replaced wholesale on every renewal after that, and
// cleared when the API rejects the token so the next attempt renews instead
// of reusing a known-bad value.
//
// Memory is the default variant. SQLite persists the token across process
// restarts, optionally sealed at rest.
package tokenstore

import (
	"context"
	"time"
)

// Token is an opaque credential value with an absolute expiry instant.
// A zero ExpiresAt means the expiry is unknown and the token is trusted
// until the API rejects it.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token may be attached to a new request:
// a value is present and either no expiry is recorded or the expiry is
// strictly after now.
func (t Token) Valid(now time.Time) bool {
	if t.Value == "" {
		return false
	}
	return t.ExpiresAt.IsZero() || t.ExpiresAt.After(now)
}

// Store holds the current token. Implementations must be safe for
// concurrent use: readers always observe a complete Token, never a
// partially written one.
//
// The error returns exist for durable variants; Memory never fails.
type Store interface {
	// Get returns the stored token and whether one is present.
	Get(ctx context.Context) (Token, bool, error)

	// Set replaces the stored token wholesale.
	Set(ctx context.Context, t Token) error

	// Clear removes the stored token, forcing the next authorization to
	// renew.
	Clear(ctx context.Context) error
}
