package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// PostgresSettingsRepository keeps the settings as one JSONB row.
type PostgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

var _ SettingsRepository = (*PostgresSettingsRepository)(nil)

func (r *PostgresSettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT payload, updated_at
		FROM dashboard_settings
		WHERE id = 1
	`
	var payload []byte
	var s domain.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(&payload, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	updatedAt := s.UpdatedAt
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.UpdatedAt = updatedAt
	return &s, nil
}

func (r *PostgresSettingsRepository) Save(ctx context.Context, s *domain.Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	query := `
		INSERT INTO dashboard_settings (id, payload, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, payload, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
