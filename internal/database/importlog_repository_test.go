package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gojobs/internal/domain"
)

func TestImportLogRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewImportLogRepository(db)

	mock.ExpectQuery("INSERT INTO import_logs").
		WithArgs("all", 1, "ausbildung", domain.ImportStatusRunning, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	log := &domain.ImportLog{
		Source:    "all",
		PortalID:  1,
		JobType:   "ausbildung",
		Status:    domain.ImportStatusRunning,
		StartedAt: time.Now(),
	}

	require.NoError(t, repo.Create(context.Background(), log))
	assert.Equal(t, int64(7), log.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportLogRepository_Finalize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewImportLogRepository(db)

	mock.ExpectExec("UPDATE import_logs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	log := &domain.ImportLog{
		ID:           7,
		Status:       domain.ImportStatusCompleted,
		TotalFetched: 40,
		NewCount:     10,
		UpdatedCount: 25,
		SkippedCount: 5,
		DurationMs:   1234,
		CompletedAt:  &now,
	}

	require.NoError(t, repo.Finalize(context.Background(), log))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportLogRepository_Recent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewImportLogRepository(db)

	started := time.Now()
	mock.ExpectQuery("SELECT id, source, portal_id").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "source", "portal_id", "job_type", "status", "total_fetched",
			"new_count", "updated_count", "skipped_count", "error_count",
			"duration_ms", "started_at", "completed_at",
		}).AddRow(int64(2), "all", 1, "ausbildung", "completed", 40, 10, 25, 5, 0, int64(1234), started, started))

	logs, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "ausbildung", logs[0].JobType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
