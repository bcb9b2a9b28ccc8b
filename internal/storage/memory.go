package storage

import "sync"

// MemoryStore keeps snapshots in memory. It is used when persistence is turned off
// and by SSH sessions without a database.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// SaveSnapshot stores a copy of data under key.
func (m *MemoryStore) SaveSnapshot(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// LoadSnapshot returns a copy of the snapshot under key, or nil if there is none.
func (m *MemoryStore) LoadSnapshot(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// DeleteSnapshot removes the snapshot under key and reports whether it existed.
func (m *MemoryStore) DeleteSnapshot(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	delete(m.data, key)
	return ok, nil
}
