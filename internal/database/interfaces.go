package database

import (
	"context"
	"time"

	"github.com/jonesrussell/gojobs/internal/domain"
)

// ExternalJobStore is the persistence surface the orchestrator consumes.
type ExternalJobStore interface {
	FindBySourceID(ctx context.Context, source, sourceID string) (*domain.ExternalJob, error)
	HasActiveTitleHash(ctx context.Context, titleHash string, portalID int) (bool, error)
	Create(ctx context.Context, job *domain.ExternalJob) error
	MarkSeen(ctx context.Context, id int64, job domain.NormalizedJob) error
	DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error)
	CountActive(ctx context.Context) (int, error)
	CountBySource(ctx context.Context) ([]domain.SourceCount, error)
	CountByJobType(ctx context.Context) ([]domain.JobTypeCount, error)
}

// ImportLogStore records and reads the append-only import audit trail.
type ImportLogStore interface {
	Create(ctx context.Context, log *domain.ImportLog) error
	Finalize(ctx context.Context, log *domain.ImportLog) error
	Recent(ctx context.Context, limit int) ([]domain.ImportLog, error)
}
