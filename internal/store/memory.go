package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-memory Backend, safe for concurrent use.
// Data is lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	writes int
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, ErrNotFound)
	}
	// Return a copy to avoid external modifications
	return append([]byte(nil), data...), nil
}

func (m *Memory) Write(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[path] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Writes returns how many writes the backend has accepted.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
