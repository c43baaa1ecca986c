// Package kvstore provides the key-value backend underneath the persistent
// store. Production uses the SQLite backend; tests use the in-memory one.
package kvstore

import "sync"

// Backend is a minimal key-value interface over opaque JSON blobs.
type Backend interface {
	// Get returns the value for key. The second return is false when the
	// key does not exist.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Memory is a map-backed Backend for tests.
// FailWrites forces Set/Delete to return ErrWriteFailed, which lets tests
// exercise the store's write-failure surfacing.
type Memory struct {
	mu         sync.Mutex
	data       map[string][]byte
	FailWrites bool
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrWriteFailed
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrWriteFailed
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
