// Package storage provides an in-memory implementation of the CRUD store
// contract. It backs the integration tests, giving them the repository's
// semantics (stable ordering, partial updates, deletion receipts, reference
// checks) without a running Postgres.
package storage

import (
	"context"
	"sync"

	"inventario-api/pkg/apierror"
)

// MemStore holds one entity type keyed by ID, in insertion order.
type MemStore[T any, P any, ID comparable] struct {
	mu    sync.Mutex
	seq   int64
	rows  map[ID]T
	order []ID

	// KeyOf extracts the record's primary key.
	KeyOf func(*T) ID
	// AssignKey fills a zero primary key from the sequence; nil for entity
	// types whose keys are caller-supplied.
	AssignKey func(*T, int64)
	// Prepare fills storage-generated fields (timestamps) on create; optional.
	Prepare func(*T)
	// Apply mirrors the repository descriptor's patch application.
	Apply func(*T, *P) []string
	// CheckRefs validates references before a write; optional. It is called
	// without the store lock held, so it may query this store or its siblings.
	CheckRefs func(*T) error

	// Name appears in error messages, matching the repository's resource names.
	Name string
}

func NewMemStore[T any, P any, ID comparable](name string) *MemStore[T, P, ID] {
	return &MemStore[T, P, ID]{
		Name: name,
		rows: map[ID]T{},
	}
}

func (s *MemStore[T, P, ID]) Get(_ context.Context, id ID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.rows[id]
	if !ok {
		var zero T
		return zero, apierror.NotFound(s.Name, id)
	}
	return entity, nil
}

func (s *MemStore[T, P, ID]) List(_ context.Context, skip int, limit int) ([]T, error) {
	if skip < 0 || limit < 0 {
		return nil, apierror.BadRequest("skip and limit must not be negative", "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []T{}
	for i := skip; i < len(s.order) && len(out) < limit; i++ {
		out = append(out, s.rows[s.order[i]])
	}
	return out, nil
}

func (s *MemStore[T, P, ID]) Create(_ context.Context, candidate T) (T, error) {
	var zero T

	// Reference checks run before the lock is taken: hooks are free to call
	// Has/Find on this store or its siblings.
	if s.CheckRefs != nil {
		if err := s.CheckRefs(&candidate); err != nil {
			return zero, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if s.AssignKey != nil {
		var empty ID
		if s.KeyOf(&candidate) == empty {
			s.AssignKey(&candidate, s.seq)
		}
	}
	if s.Prepare != nil {
		s.Prepare(&candidate)
	}

	id := s.KeyOf(&candidate)
	if _, exists := s.rows[id]; exists {
		return zero, apierror.Conflict(s.Name+" violates a unique constraint", "")
	}

	s.rows[id] = candidate
	s.order = append(s.order, id)
	return candidate, nil
}

func (s *MemStore[T, P, ID]) Update(_ context.Context, id ID, patch P) (T, error) {
	var zero T

	s.mu.Lock()
	existing, ok := s.rows[id]
	if !ok {
		s.mu.Unlock()
		return zero, apierror.NotFound(s.Name, id)
	}

	changed := s.Apply(&existing, &patch)
	if len(changed) == 0 {
		s.mu.Unlock()
		return existing, nil
	}
	s.mu.Unlock()

	// Same rule as Create: hooks may look the store up, so they run unlocked.
	if s.CheckRefs != nil {
		if err := s.CheckRefs(&existing); err != nil {
			return zero, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		// Row vanished between the read and the write; last writer won.
		return zero, apierror.NotFound(s.Name, id)
	}

	s.rows[id] = existing
	return existing, nil
}

func (s *MemStore[T, P, ID]) Delete(_ context.Context, id ID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[id]
	if !ok {
		var zero T
		return zero, apierror.NotFound(s.Name, id)
	}

	delete(s.rows, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return existing, nil
}

// Has reports whether a record with the id exists; used by sibling stores'
// reference checks.
func (s *MemStore[T, P, ID]) Has(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	return ok
}

// Find returns the first record matching pred, in insertion order.
func (s *MemStore[T, P, ID]) Find(pred func(*T) bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		entity := s.rows[id]
		if pred(&entity) {
			return entity, true
		}
	}
	var zero T
	return zero, false
}
