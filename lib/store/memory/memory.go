// Package memory implements the store interface in process memory. Cursors are lost on exit.
package memory

import (
	"sync"

	"github.com/tarancss/shipledger/lib/store"
)

// Memory is a cursor store backed by a map.
type Memory struct {
	mu      sync.Mutex
	cursors map[string]store.Cursor
}

// New returns an empty store.
func New() *Memory {
	return &Memory{cursors: make(map[string]store.Cursor)}
}

// LoadCursor returns the cursor of the named listener.
func (m *Memory) LoadCursor(name string) (store.Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cursors[name]
	if !ok {
		return c, store.ErrDataNotFound
	}

	return c, nil
}

// SaveCursor saves the cursor of the named listener.
func (m *Memory) SaveCursor(name string, c store.Cursor) error {
	m.mu.Lock()
	m.cursors[name] = c
	m.mu.Unlock()

	return nil
}

// DeleteCursor deletes the cursor of the named listener.
func (m *Memory) DeleteCursor(name string) error {
	m.mu.Lock()
	delete(m.cursors, name)
	m.mu.Unlock()

	return nil
}
