package domain

import "time"

// Import run statuses recorded on an ImportLog row.
const (
	ImportStatusRunning   = "running"
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

// ImportLog is one append-only audit row per per-portal import run. It is
// finalized exactly once and never mutated afterward.
type ImportLog struct {
	ID           int64      `db:"id"            json:"id"`
	Source       string     `db:"source"        json:"source"`
	PortalID     int        `db:"portal_id"     json:"portalId"`
	JobType      string     `db:"job_type"      json:"jobType"`
	Status       string     `db:"status"        json:"status"`
	TotalFetched int        `db:"total_fetched" json:"totalFetched"`
	NewCount     int        `db:"new_count"     json:"newCount"`
	UpdatedCount int        `db:"updated_count" json:"updatedCount"`
	SkippedCount int        `db:"skipped_count" json:"skippedCount"`
	ErrorCount   int        `db:"error_count"   json:"errorCount"`
	DurationMs   int64      `db:"duration_ms"   json:"durationMs"`
	StartedAt    time.Time  `db:"started_at"    json:"startedAt"`
	CompletedAt  *time.Time `db:"completed_at"  json:"completedAt,omitempty"`
}

// SourceCount is an aggregate of active listings per provider.
type SourceCount struct {
	Source string `db:"source" json:"source"`
	Count  int    `db:"count"  json:"count"`
}

// JobTypeCount is an aggregate of active listings per portal category.
type JobTypeCount struct {
	JobType string `db:"job_type" json:"jobType"`
	Count   int    `db:"count"    json:"count"`
}
