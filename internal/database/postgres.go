// Package database provides PostgreSQL access for the persisted job mirror
// and the import audit trail.
package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/jonesrussell/gojobs/internal/config"
)

// New opens a PostgreSQL connection pool.
func New(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// EnsureSchema creates the tables and indexes this service depends on. The
// (source, source_id) uniqueness constraint is what the upsert logic relies
// on; title_hash is indexed for cross-source dedup lookups.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS external_jobs (
			id            BIGSERIAL PRIMARY KEY,
			source        TEXT NOT NULL,
			source_id     TEXT NOT NULL,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			company_name  TEXT,
			city          TEXT,
			postal_code   TEXT,
			latitude      DOUBLE PRECISION,
			longitude     DOUBLE PRECISION,
			salary_min    DOUBLE PRECISION,
			salary_max    DOUBLE PRECISION,
			salary_unit   TEXT NOT NULL DEFAULT 'MONTH',
			category      TEXT NOT NULL DEFAULT '',
			category_tag  TEXT NOT NULL DEFAULT '',
			external_url  TEXT NOT NULL,
			published_at  TIMESTAMPTZ,
			title_hash    TEXT NOT NULL,
			slug          TEXT NOT NULL,
			job_type      TEXT NOT NULL,
			portal_id     INTEGER NOT NULL,
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			last_seen_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at    TIMESTAMPTZ NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (source, source_id)
		);

		CREATE INDEX IF NOT EXISTS idx_external_jobs_title_hash
			ON external_jobs (title_hash, portal_id) WHERE is_active;
		CREATE INDEX IF NOT EXISTS idx_external_jobs_last_seen
			ON external_jobs (last_seen_at) WHERE is_active;

		CREATE TABLE IF NOT EXISTS import_logs (
			id            BIGSERIAL PRIMARY KEY,
			source        TEXT NOT NULL,
			portal_id     INTEGER NOT NULL,
			job_type      TEXT NOT NULL,
			status        TEXT NOT NULL,
			total_fetched INTEGER NOT NULL DEFAULT 0,
			new_count     INTEGER NOT NULL DEFAULT 0,
			updated_count INTEGER NOT NULL DEFAULT 0,
			skipped_count INTEGER NOT NULL DEFAULT 0,
			error_count   INTEGER NOT NULL DEFAULT 0,
			duration_ms   BIGINT NOT NULL DEFAULT 0,
			started_at    TIMESTAMPTZ NOT NULL,
			completed_at  TIMESTAMPTZ
		);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
