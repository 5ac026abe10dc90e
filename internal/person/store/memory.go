package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"registru/internal/person/models"
	"registru/internal/person/query"
	"registru/pkg/platform/sentinel"
)

// ErrNotFound is returned when a person record does not exist.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores person records in memory for dev and tests. Records are
// cloned on the way in and out so callers never share memory with the store.
type InMemory struct {
	mu      sync.RWMutex
	people  map[uuid.UUID]*models.Person
	created []uuid.UUID
}

// NewInMemory creates an in-memory person store.
func NewInMemory() *InMemory {
	return &InMemory{
		people: make(map[uuid.UUID]*models.Person),
	}
}

// Create inserts a new record under its assigned id.
func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people[p.ID] = p.Clone()
	s.created = append(s.created, p.ID)
	return nil
}

// FindByID retrieves a record by its UUID.
func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.people[id]; ok {
		return p.Clone(), nil
	}
	return nil, ErrNotFound
}

// Update applies the merge closure to a copy of the current record under the
// write lock, storing the result only when the closure succeeds. Interleaved
// updates to the same record therefore never lose fields.
func (s *InMemory) Update(_ context.Context, id uuid.UUID, apply func(*models.Person) error) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.people[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := current.Clone()
	if err := apply(next); err != nil {
		return nil, err
	}
	s.people[id] = next
	return next.Clone(), nil
}

// Delete removes a record. Deleting an unknown id reports ErrNotFound.
func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.people[id]; !ok {
		return ErrNotFound
	}
	delete(s.people, id)
	for i, createdID := range s.created {
		if createdID == id {
			s.created = append(s.created[:i], s.created[i+1:]...)
			break
		}
	}
	return nil
}

// List evaluates the listing contract against a snapshot taken under the
// read lock. Storage order is insertion order, which is what explicit-sort
// ties preserve.
func (s *InMemory) List(_ context.Context, params query.Params) ([]*models.Person, int, error) {
	s.mu.RLock()
	snapshot := make([]*models.Person, 0, len(s.people))
	for _, id := range s.created {
		snapshot = append(snapshot, s.people[id].Clone())
	}
	s.mu.RUnlock()

	items, total := query.Apply(snapshot, params)
	return items, total, nil
}

// Count returns the number of stored records.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.people), nil
}
