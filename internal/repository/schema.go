package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS dashboard_settings (
		id         SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ceeb_submissions (
		submission_id    UUID PRIMARY KEY,
		submitted_at     TIMESTAMPTZ NOT NULL,
		submitted_by     TEXT NOT NULL DEFAULT '',
		inspection_ids   INTEGER[] NOT NULL,
		snapshot_version BIGINT NOT NULL,
		report_id        INTEGER NOT NULL,
		external_ref     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ceeb_submissions_submitted_at ON ceeb_submissions (submitted_at DESC)`,
}

// EnsureSchema creates the dashboard tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
