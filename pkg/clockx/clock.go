// Package clockx provides a replaceable source of current time so that
// expiry arithmetic stays deterministic under test. Production code takes a
// Clock instead of calling time.Now directly.
package clockx

import (
	"sync"
	"time"
)

// Clock returns the current instant. Implementations must be safe for
// concurrent use.
type Clock interface {
	Now() time.Time
}

// Real is the wall clock. The zero value is ready to use.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// Fake is a manually-advanced clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake frozen at t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set jumps the clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
