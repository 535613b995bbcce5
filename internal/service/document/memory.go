package document

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. It backs local
// development when no Firestore project is configured and doubles as the
// test double. A single mutex serializes writes, which satisfies the
// per-name serialization contract for one process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

func (m *MemoryStore) Create(ctx context.Context, name string, params UpsertParams) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[name]; exists {
		return nil, ErrAlreadyExists
	}

	rec := newRecord(name, params, time.Now().UTC())
	m.records[name] = rec
	out := *rec
	return &out, nil
}

func (m *MemoryStore) Upsert(ctx context.Context, name string, params UpsertParams) (*Record, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	displaced := ""

	rec, exists := m.records[name]
	if !exists {
		rec = newRecord(name, params, now)
		m.records[name] = rec
	} else {
		if params.PhotoPath != nil && rec.PhotoPath != nil && *rec.PhotoPath != *params.PhotoPath {
			displaced = *rec.PhotoPath
		}
		rec.apply(params, now)
	}

	out := *rec
	return &out, displaced, nil
}

func (m *MemoryStore) Find(ctx context.Context, name string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.records[name]
	if !exists {
		return nil, ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (m *MemoryStore) Delete(ctx context.Context, name string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.records[name]
	if !exists {
		return nil, ErrNotFound
	}
	delete(m.records, name)
	out := *rec
	return &out, nil
}

// Clear removes all records (useful for test cleanup).
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]*Record)
}

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)
