package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gojobs/internal/domain"
)

// ImportLogRepository handles the append-only import audit trail.
type ImportLogRepository struct {
	db *sqlx.DB
}

func NewImportLogRepository(db *sqlx.DB) *ImportLogRepository {
	return &ImportLogRepository{db: db}
}

// Create inserts the row at the start of a portal import.
func (r *ImportLogRepository) Create(ctx context.Context, log *domain.ImportLog) error {
	query := `
		INSERT INTO import_logs (source, portal_id, job_type, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		log.Source,
		log.PortalID,
		log.JobType,
		log.Status,
		log.StartedAt,
	).Scan(&log.ID)

	if err != nil {
		return fmt.Errorf("create import log: %w", err)
	}

	return nil
}

// Finalize writes the run's counters exactly once at the end of the import.
// The row is never touched again afterward.
func (r *ImportLogRepository) Finalize(ctx context.Context, log *domain.ImportLog) error {
	query := `
		UPDATE import_logs
		SET status = $1, total_fetched = $2, new_count = $3, updated_count = $4,
		    skipped_count = $5, error_count = $6, duration_ms = $7, completed_at = $8
		WHERE id = $9
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		log.Status,
		log.TotalFetched,
		log.NewCount,
		log.UpdatedCount,
		log.SkippedCount,
		log.ErrorCount,
		log.DurationMs,
		log.CompletedAt,
		log.ID,
	)
	if err != nil {
		return fmt.Errorf("finalize import log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("import log not found: %d", log.ID)
	}

	return nil
}

// Recent returns the most recent import runs, newest first.
func (r *ImportLogRepository) Recent(ctx context.Context, limit int) ([]domain.ImportLog, error) {
	var logs []domain.ImportLog
	query := `
		SELECT id, source, portal_id, job_type, status, total_fetched,
		       new_count, updated_count, skipped_count, error_count,
		       duration_ms, started_at, completed_at
		FROM import_logs
		ORDER BY started_at DESC
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("list recent imports: %w", err)
	}

	if logs == nil {
		logs = []domain.ImportLog{}
	}
	return logs, nil
}
