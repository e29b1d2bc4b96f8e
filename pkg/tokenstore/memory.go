package tokenstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. The zero value is empty and ready to use.
type Memory struct {
	mu      sync.RWMutex
	token   Token
	present bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (Token, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.present, nil
}

func (m *Memory) Set(_ context.Context, t Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = t
	m.present = true
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = Token{}
	m.present = false
	return nil
}
