package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gojobs/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestExternalJobRepository_FindBySourceID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExternalJobRepository(db)

	mock.ExpectQuery("SELECT id, source, source_id").
		WithArgs("adzuna", "123").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	job, err := repo.FindBySourceID(context.Background(), "adzuna", "123")
	require.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalJobRepository_HasActiveTitleHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExternalJobRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM external_jobs")).
		WithArgs("abcd1234abcd1234", 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	found, err := repo.HasActiveTitleHash(context.Background(), "abcd1234abcd1234", 2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalJobRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExternalJobRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO external_jobs").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))

	job := &domain.ExternalJob{
		Source:     "adzuna",
		SourceID:   "123",
		Title:      "Ausbildung Elektroniker",
		TitleHash:  "abcd1234abcd1234",
		Slug:       "mueller-gmbh-ausbildung-elektroniker",
		JobType:    "ausbildung",
		PortalID:   1,
		IsActive:   true,
		SalaryUnit: string(domain.SalaryMonth),
		LastSeenAt: now,
		ExpiresAt:  now.AddDate(0, 0, 30),
	}

	require.NoError(t, repo.Create(context.Background(), job))
	assert.Equal(t, int64(42), job.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalJobRepository_MarkSeen_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExternalJobRepository(db)

	mock.ExpectExec("UPDATE external_jobs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkSeen(context.Background(), 99, domain.NormalizedJob{Title: "x"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalJobRepository_DeactivateStale(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExternalJobRepository(db)

	cutoff := time.Now().AddDate(0, 0, -3)
	mock.ExpectExec("UPDATE external_jobs").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	count, err := repo.DeactivateStale(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalJobRepository_CountBySource(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExternalJobRepository(db)

	mock.ExpectQuery("SELECT source, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"source", "count"}).
			AddRow("adzuna", 120).
			AddRow("jooble", 80))

	counts, err := repo.CountBySource(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "adzuna", counts[0].Source)
	assert.Equal(t, 120, counts[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
