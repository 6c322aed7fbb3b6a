// Package storage provides the durable snapshot store behind the repository
// and settings layers. A store holds whole JSON blobs by key; callers treat a
// failed save as "best effort, state is still in memory" and a failed load as
// "start from defaults".
package storage

import "sync"

// Storage keys for the two persisted blobs.
const (
	KeyPurchaseRequests = "procurement_hub_purchase_requests"
	KeySettings         = "procurement_hub_settings"
)

// Store is the durable key-value snapshot contract. Implementations never
// propagate errors to callers: Load reports absence and Save reports success.
type Store interface {
	// Load returns the blob stored under key, or ok=false when the key is
	// absent or the backend failed.
	Load(key string) (value []byte, ok bool)
	// Save writes the blob under key, replacing any previous value. Returns
	// false when the write could not be made durable.
	Save(key string, value []byte) bool
	// Close releases backend resources.
	Close() error
}

// MemoryStore is a map-backed Store. It is the degraded mode the service
// falls back to and the fixture used by tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, false
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true
}

func (s *MemoryStore) Save(key string, value []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	s.data[key] = copied
	return true
}

func (s *MemoryStore) Close() error { return nil }
