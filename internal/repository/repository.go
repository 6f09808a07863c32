package repository

import (
	"context"
	"errors"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// ErrNotFound no row for the requested key.
var ErrNotFound = errors.New("not found")

// SettingsRepository stores the single dashboard settings record.
type SettingsRepository interface {
	// Get returns ErrNotFound until Save has been called once.
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s *domain.Settings) error
}

// SubmissionsRepository stores CEEB submission records.
type SubmissionsRepository interface {
	// Create assigns an id when s.ID is empty.
	Create(ctx context.Context, s *domain.Submission) error
	Get(ctx context.Context, id string) (*domain.Submission, error)
	// List returns newest first along with the total count.
	List(ctx context.Context, page, size int) ([]domain.Submission, int, error)
}

func pageBounds(total, page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}
