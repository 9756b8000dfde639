package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gojobs/internal/domain"
)

// ExternalJobRepository handles database operations for the persisted job
// mirror.
type ExternalJobRepository struct {
	db *sqlx.DB
}

func NewExternalJobRepository(db *sqlx.DB) *ExternalJobRepository {
	return &ExternalJobRepository{db: db}
}

// FindBySourceID looks a job up by its natural key. Returns (nil, nil) when
// no record exists.
func (r *ExternalJobRepository) FindBySourceID(ctx context.Context, source, sourceID string) (*domain.ExternalJob, error) {
	var job domain.ExternalJob
	query := `
		SELECT id, source, source_id, title, description, company_name, city,
		       postal_code, latitude, longitude, salary_min, salary_max,
		       salary_unit, category, category_tag, external_url, published_at,
		       title_hash, slug, job_type, portal_id, is_active, last_seen_at,
		       expires_at, created_at, updated_at
		FROM external_jobs
		WHERE source = $1 AND source_id = $2
	`

	err := r.db.GetContext(ctx, &job, query, source, sourceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job by source id: %w", err)
	}

	return &job, nil
}

// HasActiveTitleHash reports whether an active record with the given title
// hash already exists within the portal. This is the cross-source dedup check
// against persisted state.
func (r *ExternalJobRepository) HasActiveTitleHash(ctx context.Context, titleHash string, portalID int) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM external_jobs
		WHERE title_hash = $1 AND portal_id = $2 AND is_active
	`

	if err := r.db.GetContext(ctx, &count, query, titleHash, portalID); err != nil {
		return false, fmt.Errorf("count active title hash: %w", err)
	}

	return count > 0, nil
}

// Create inserts a new job record.
func (r *ExternalJobRepository) Create(ctx context.Context, job *domain.ExternalJob) error {
	query := `
		INSERT INTO external_jobs (
			source, source_id, title, description, company_name, city,
			postal_code, latitude, longitude, salary_min, salary_max,
			salary_unit, category, category_tag, external_url, published_at,
			title_hash, slug, job_type, portal_id, is_active, last_seen_at,
			expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23
		)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		job.Source,
		job.SourceID,
		job.Title,
		job.Description,
		job.CompanyName,
		job.City,
		job.PostalCode,
		job.Latitude,
		job.Longitude,
		job.SalaryMin,
		job.SalaryMax,
		job.SalaryUnit,
		job.Category,
		job.CategoryTag,
		job.ExternalURL,
		job.PublishedAt,
		job.TitleHash,
		job.Slug,
		job.JobType,
		job.PortalID,
		job.IsActive,
		job.LastSeenAt,
		job.ExpiresAt,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create external job: %w", err)
	}

	return nil
}

// MarkSeen refreshes the mutable content fields of an existing record and
// bumps last_seen_at. Everything else stays untouched.
func (r *ExternalJobRepository) MarkSeen(ctx context.Context, id int64, job domain.NormalizedJob) error {
	query := `
		UPDATE external_jobs
		SET title = $1, description = $2, salary_min = $3, salary_max = $4,
		    salary_unit = $5, external_url = $6, is_active = TRUE,
		    last_seen_at = NOW(), updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		job.Title,
		job.Description,
		job.SalaryMin,
		job.SalaryMax,
		job.SalaryUnit,
		job.ExternalURL,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark job seen: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("job not found: %d", id)
	}

	return nil
}

// DeactivateStale flips is_active off for every record not observed since the
// cutoff. Records are never hard-deleted.
func (r *ExternalJobRepository) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE external_jobs
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active AND last_seen_at < $1
	`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deactivate stale jobs: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return count, nil
}

// CountActive returns the number of active records.
func (r *ExternalJobRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM external_jobs WHERE is_active`); err != nil {
		return 0, fmt.Errorf("count active jobs: %w", err)
	}
	return count, nil
}

// CountBySource aggregates active records per provider.
func (r *ExternalJobRepository) CountBySource(ctx context.Context) ([]domain.SourceCount, error) {
	var counts []domain.SourceCount
	query := `
		SELECT source, COUNT(*) AS count
		FROM external_jobs
		WHERE is_active
		GROUP BY source
		ORDER BY count DESC
	`

	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count jobs by source: %w", err)
	}

	if counts == nil {
		counts = []domain.SourceCount{}
	}
	return counts, nil
}

// CountByJobType aggregates active records per portal category.
func (r *ExternalJobRepository) CountByJobType(ctx context.Context) ([]domain.JobTypeCount, error) {
	var counts []domain.JobTypeCount
	query := `
		SELECT job_type, COUNT(*) AS count
		FROM external_jobs
		WHERE is_active
		GROUP BY job_type
		ORDER BY count DESC
	`

	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count jobs by type: %w", err)
	}

	if counts == nil {
		counts = []domain.JobTypeCount{}
	}
	return counts, nil
}
