package authority

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and local development.
// Expiry is checked lazily on Get.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]memoryRecord
}

type memoryRecord struct {
	rec       Record
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		records: make(map[string]memoryRecord),
	}
}

func (m *MemoryStore) Set(_ context.Context, token string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[token] = memoryRecord{rec: rec, expiresAt: time.Now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.records[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.records, token)
		return nil, nil
	}

	rec := entry.rec
	return &rec, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, token)
	return nil
}
