package snapshot

import (
	"sync"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// Store holds the current snapshot. Snapshots handed out by Current are
// never mutated; updates go through Update, which works on a copy.
type Store struct {
	mu      sync.RWMutex
	current *domain.Snapshot
}

func NewStore() *Store {
	return &Store{current: &domain.Snapshot{}}
}

// Current returns the active snapshot. Callers must treat it as read-only.
func (s *Store) Current() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a freshly generated snapshot.
func (s *Store) Replace(snap *domain.Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
}

// Update applies fn to a copy of the current snapshot and publishes the copy
// if fn succeeds.
func (s *Store) Update(fn func(*domain.Snapshot) error) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.current = next
	return next, nil
}
