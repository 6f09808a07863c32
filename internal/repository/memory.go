package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// MemorySettingsRepo is used when DB is disabled.
type MemorySettingsRepo struct {
	mu       sync.RWMutex
	settings *domain.Settings
}

func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{}
}

var _ SettingsRepository = (*MemorySettingsRepo)(nil)

func (r *MemorySettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, ErrNotFound
	}
	cp := *r.settings
	return &cp, nil
}

func (r *MemorySettingsRepo) Save(_ context.Context, s *domain.Settings) error {
	cp := *s
	r.mu.Lock()
	r.settings = &cp
	r.mu.Unlock()
	return nil
}

// MemorySubmissionsRepo is used when DB is disabled.
type MemorySubmissionsRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Submission
}

func NewMemorySubmissionsRepo() *MemorySubmissionsRepo {
	return &MemorySubmissionsRepo{items: map[string]domain.Submission{}}
}

var _ SubmissionsRepository = (*MemorySubmissionsRepo)(nil)

func (r *MemorySubmissionsRepo) Create(_ context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	cp := *s
	cp.InspectionIDs = append([]int(nil), s.InspectionIDs...)

	r.mu.Lock()
	r.items[s.ID] = cp
	r.mu.Unlock()
	return nil
}

func (r *MemorySubmissionsRepo) Get(_ context.Context, id string) (*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemorySubmissionsRepo) List(_ context.Context, page, size int) ([]domain.Submission, int, error) {
	r.mu.RLock()
	all := make([]domain.Submission, 0, len(r.items))
	for _, s := range r.items {
		all = append(all, s)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].SubmittedAt.Equal(all[j].SubmittedAt) {
			return all[i].SubmittedAt.After(all[j].SubmittedAt)
		}
		return all[i].ID < all[j].ID
	})
	start, end := pageBounds(len(all), page, size)
	return all[start:end], len(all), nil
}
