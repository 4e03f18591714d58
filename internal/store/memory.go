package store

import (
	"context"
	"sync"

	"github.com/feedboard/feedboard/internal/model"
)

// MemoryStore is an in-process Store used in tests.
// Load and Save copy the collection so callers never share its backing array.
type MemoryStore struct {
	mu      sync.Mutex
	entries model.Collection
	loads   int
	saves   int
}

// NewMemoryStore creates a MemoryStore holding the given entries.
func NewMemoryStore(entries ...model.Entry) *MemoryStore {
	return &MemoryStore{entries: model.Collection(entries).Clone()}
}

// Load returns a copy of the stored collection.
func (m *MemoryStore) Load(ctx context.Context) model.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.entries.Clone()
}

// Save replaces the stored collection with a copy of c.
func (m *MemoryStore) Save(ctx context.Context, c model.Collection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.entries = c.Clone()
}

// Entries returns a copy of the stored collection without counting a load.
func (m *MemoryStore) Entries() model.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries.Clone()
}

// Loads returns how many times Load was called.
func (m *MemoryStore) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
