package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/guts/pkg/ports"
	"github.com/aretw0/guts/pkg/schema"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*schema.Object
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*schema.Object),
	}
}

// Save keeps a deep copy of the record.
func (s *Store) Save(ctx context.Context, id string, obj *schema.Object) error {
	copied := obj.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load returns a copy of the record, validated with regularization.
func (s *Store) Load(ctx context.Context, id string) (*schema.Object, error) {
	s.mu.RLock()
	obj, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ports.ErrDocumentNotFound
	}

	ret := obj.Clone()
	if err := ret.Validate(schema.Regularize()); err != nil {
		return nil, err
	}
	return ret, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored ids in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
