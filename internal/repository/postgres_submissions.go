package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// PostgresSubmissionsRepository stores submissions in ceeb_submissions.
type PostgresSubmissionsRepository struct {
	db *sql.DB
}

func NewPostgresSubmissionsRepository(db *sql.DB) *PostgresSubmissionsRepository {
	return &PostgresSubmissionsRepository{db: db}
}

var _ SubmissionsRepository = (*PostgresSubmissionsRepository)(nil)

const submissionColumns = `
	submission_id::text,
	submitted_at,
	submitted_by,
	inspection_ids,
	snapshot_version,
	report_id,
	external_ref
`

func (r *PostgresSubmissionsRepository) Create(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	ids := make(pq.Int64Array, len(s.InspectionIDs))
	for i, id := range s.InspectionIDs {
		ids[i] = int64(id)
	}

	query := `
		INSERT INTO ceeb_submissions (
			submission_id, submitted_at, submitted_by, inspection_ids,
			snapshot_version, report_id, external_ref
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.SubmittedAt, s.SubmittedBy, ids,
		s.SnapshotVersion, s.ReportID, s.ExternalRef,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *PostgresSubmissionsRepository) Get(ctx context.Context, id string) (*domain.Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	query := `SELECT ` + submissionColumns + ` FROM ceeb_submissions WHERE submission_id = $1`

	s, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return s, nil
}

func (r *PostgresSubmissionsRepository) List(ctx context.Context, page, size int) ([]domain.Submission, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ceeb_submissions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	start, end := pageBounds(total, page, size)
	query := `SELECT ` + submissionColumns + `
		FROM ceeb_submissions
		ORDER BY submitted_at DESC, submission_id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, end-start, start)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	out := []domain.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan submission: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	var s domain.Submission
	var ids pq.Int64Array
	if err := row.Scan(
		&s.ID,
		&s.SubmittedAt,
		&s.SubmittedBy,
		&ids,
		&s.SnapshotVersion,
		&s.ReportID,
		&s.ExternalRef,
	); err != nil {
		return nil, err
	}
	s.InspectionIDs = make([]int, len(ids))
	for i, id := range ids {
		s.InspectionIDs[i] = int(id)
	}
	return &s, nil
}
