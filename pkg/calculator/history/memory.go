package history

import (
	"context"
	"sync"
)

// MemoryStore keeps history in memory.
// Data is lost when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Entry // sessionID -> entries, oldest first
	closed   bool
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]Entry),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(ctx context.Context, sessionID string, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.sessions[sessionID] = append(m.sessions[sessionID], stamp(e))
	return nil
}

// Recent implements Store.
func (m *MemoryStore) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	entries := m.sessions[sessionID]
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}

	recent := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, entries[i])
	}
	return recent, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.sessions, sessionID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.sessions = nil
	return nil
}

// Len returns the total number of entries across all sessions.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, entries := range m.sessions {
		count += len(entries)
	}
	return count
}
