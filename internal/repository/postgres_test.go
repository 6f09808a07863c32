package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestEnsureSchema(t *testing.T) {
	db, mock := setupMockDB(t)
	for range schema {
		mock.ExpectExec(`CREATE`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS dashboard_settings`).WillReturnError(errors.New("permission denied"))
	err := EnsureSchema(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestPostgresSettings_GetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSettingsRepository(db)

	mock.ExpectQuery(`SELECT payload, updated_at`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSettings_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSettingsRepository(db)

	updatedAt := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(domain.Settings{CompanyName: "Kominiarz", ReminderDays: 5})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"payload", "updated_at"}).AddRow(payload, updatedAt))

	s, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kominiarz", s.CompanyName)
	assert.Equal(t, 5, s.ReminderDays)
	assert.Equal(t, updatedAt, s.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSettings_Save(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSettingsRepository(db)

	s := domain.DefaultSettings()
	s.UpdatedAt = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO dashboard_settings`).
		WithArgs(sqlmock.AnyArg(), s.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), &s))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSubmissions_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSubmissionsRepository(db)

	s := &domain.Submission{
		SubmittedAt:     time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
		SubmittedBy:     "jan",
		InspectionIDs:   []int{1, 3},
		SnapshotVersion: 9,
		ReportID:        4,
		ExternalRef:     "CEEB-1",
	}
	mock.ExpectExec(`INSERT INTO ceeb_submissions`).
		WithArgs(sqlmock.AnyArg(), s.SubmittedAt, "jan", "{1,3}", int64(9), 4, "CEEB-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), s))
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func submissionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"submission_id", "submitted_at", "submitted_by", "inspection_ids",
		"snapshot_version", "report_id", "external_ref",
	})
}

func TestPostgresSubmissions_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSubmissionsRepository(db)

	id := uuid.NewString()
	at := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT`).
		WithArgs(id).
		WillReturnRows(submissionRows().AddRow(id, at, "jan", "{1,3}", 9, 4, "CEEB-1"))

	s, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, []int{1, 3}, s.InspectionIDs)
	assert.Equal(t, int64(9), s.SnapshotVersion)
	assert.Equal(t, 4, s.ReportID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSubmissions_GetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSubmissionsRepository(db)

	_, err := repo.Get(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrNotFound)

	id := uuid.NewString()
	mock.ExpectQuery(`SELECT`).WithArgs(id).WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), id)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSubmissions_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresSubmissionsRepository(db)

	at := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`ORDER BY submitted_at DESC`).
		WithArgs(1, 2).
		WillReturnRows(submissionRows().AddRow(uuid.NewString(), at, "jan", "{7}", 2, 1, ""))

	list, total, err := repo.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 1)
	assert.Equal(t, []int{7}, list[0].InspectionIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}
