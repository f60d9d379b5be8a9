package history

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type memoryRecord struct {
	Record
	seq uint64
}

// MemoryStorage is an in-process Storage for tests and local development.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[uuid.UUID]memoryRecord
	seq     uint64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[uuid.UUID]memoryRecord)}
}

func (m *MemoryStorage) Insert(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.records[rec.ID] = memoryRecord{Record: *rec, seq: m.seq}
	return nil
}

func (m *MemoryStorage) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]Record, error) {
	m.mu.RLock()
	owned := make([]memoryRecord, 0)
	for _, r := range m.records {
		if r.OwnerID == ownerID {
			owned = append(owned, r)
		}
	}
	m.mu.RUnlock()

	// Newest first; insertion order breaks timestamp ties.
	slices.SortFunc(owned, func(a, b memoryRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	out := make([]Record, len(owned))
	for i, r := range owned {
		out[i] = r.Record
	}
	return out, nil
}

func (m *MemoryStorage) Get(_ context.Context, ownerID, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok || r.OwnerID != ownerID {
		return nil, ErrRecordNotFound
	}
	rec := r.Record
	return &rec, nil
}

func (m *MemoryStorage) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok || r.OwnerID != ownerID {
		return ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}
