// Package aggregator orchestrates the import pipeline: it fans keyword
// searches out to every source adapter, deduplicates the merged results via
// the title hash, upserts them incrementally and retires listings that are no
// longer observed.
package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/gojobs/internal/config"
	"github.com/jonesrussell/gojobs/internal/database"
	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/jonesrussell/gojobs/internal/events"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/provider"
)

// maxLoggedErrors caps per-record persistence error logging per portal run so
// a broken batch cannot flood the log.
const maxLoggedErrors = 5

const hoursPerDay = 24

// Upsert outcomes.
const (
	outcomeNew     = "new"
	outcomeUpdated = "updated"
	outcomeSkipped = "skipped"
)

// Aggregator merges, deduplicates and persists jobs from all adapters.
type Aggregator struct {
	jobs      database.ExternalJobStore
	imports   database.ImportLogStore
	adapters  []provider.Adapter
	portals   []Portal
	publisher *events.Publisher
	cfg       config.ImportConfig
	log       logger.Logger
}

func New(
	jobs database.ExternalJobStore,
	imports database.ImportLogStore,
	adapters []provider.Adapter,
	portals []Portal,
	publisher *events.Publisher,
	cfg config.ImportConfig,
	log logger.Logger,
) *Aggregator {
	return &Aggregator{
		jobs:      jobs,
		imports:   imports,
		adapters:  adapters,
		portals:   portals,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// CycleSummary aggregates the counters of one full import cycle.
type CycleSummary struct {
	TotalFetched int
	NewCount     int
	UpdatedCount int
	SkippedCount int
	ErrorCount   int
	Deactivated  int64
	Duration     time.Duration
}

// RunAll imports every configured portal in sequence, runs the staleness
// sweep once and logs an aggregate summary. A failure in one portal never
// prevents the remaining portals from running.
func (a *Aggregator) RunAll(ctx context.Context) CycleSummary {
	started := time.Now()
	var summary CycleSummary

	for _, portal := range a.portals {
		imp := a.runPortalSafe(ctx, portal)
		if imp == nil {
			summary.ErrorCount++
			continue
		}
		summary.TotalFetched += imp.TotalFetched
		summary.NewCount += imp.NewCount
		summary.UpdatedCount += imp.UpdatedCount
		summary.SkippedCount += imp.SkippedCount
		summary.ErrorCount += imp.ErrorCount
	}

	deactivated, err := a.SweepStale(ctx)
	if err != nil {
		a.log.Error("Staleness sweep failed", logger.Error(err))
	}
	summary.Deactivated = deactivated
	summary.Duration = time.Since(started)

	fields := []logger.Field{
		logger.Int("total_fetched", summary.TotalFetched),
		logger.Int("new", summary.NewCount),
		logger.Int("updated", summary.UpdatedCount),
		logger.Int("skipped", summary.SkippedCount),
		logger.Int("errors", summary.ErrorCount),
		logger.Int64("deactivated", summary.Deactivated),
		logger.Duration("duration", summary.Duration),
	}
	for _, adapter := range a.adapters {
		fields = append(fields, logger.String(
			"budget_"+adapter.Name(),
			fmt.Sprintf("%d/%d", adapter.Budget().Used(), adapter.Budget().Quota()),
		))
	}
	a.log.Info("Import cycle finished", fields...)

	return summary
}

// runPortalSafe isolates one portal's import so a panic or unexpected error
// cannot take down the rest of the cycle.
func (a *Aggregator) runPortalSafe(ctx context.Context, portal Portal) (imp *domain.ImportLog) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("Portal import panicked",
				logger.String("job_type", portal.JobType),
				logger.Any("panic", r),
			)
			imp = nil
		}
	}()
	return a.RunPortal(ctx, portal)
}

// RunPortal imports one portal: every keyword against every adapter, one
// shared dedup set for the whole run, one ImportLog row.
func (a *Aggregator) RunPortal(ctx context.Context, portal Portal) *domain.ImportLog {
	started := time.Now()

	imp := &domain.ImportLog{
		Source:    "all",
		PortalID:  portal.PortalID,
		JobType:   portal.JobType,
		Status:    domain.ImportStatusRunning,
		StartedAt: started,
	}
	if err := a.imports.Create(ctx, imp); err != nil {
		// The audit row is best effort; the import itself still runs.
		a.log.Error("Failed to create import log",
			logger.String("job_type", portal.JobType),
			logger.Error(err),
		)
	}

	// One dedup set per portal run, shared across keywords and providers.
	seen := make(map[string]struct{})
	loggedErrors := 0

	for _, keyword := range portal.Searches {
		a.runSearch(ctx, portal, keyword, "", seen, imp, &loggedErrors)
	}
	for _, tag := range portal.CategoryTags {
		a.runSearch(ctx, portal, portal.JobType, tag, seen, imp, &loggedErrors)
	}

	now := time.Now()
	imp.Status = domain.ImportStatusCompleted
	imp.DurationMs = now.Sub(started).Milliseconds()
	imp.CompletedAt = &now

	if imp.ID != 0 {
		if err := a.imports.Finalize(ctx, imp); err != nil {
			a.log.Error("Failed to finalize import log",
				logger.String("job_type", portal.JobType),
				logger.Error(err),
			)
		}
	}

	a.publisher.PublishAsync(events.ImportEvent{
		EventType:    events.EventImportCompleted,
		PortalID:     portal.PortalID,
		JobType:      portal.JobType,
		TotalFetched: imp.TotalFetched,
		NewCount:     imp.NewCount,
		UpdatedCount: imp.UpdatedCount,
		SkippedCount: imp.SkippedCount,
		ErrorCount:   imp.ErrorCount,
	})

	a.log.Info("Portal import finished",
		logger.String("job_type", portal.JobType),
		logger.Int("total_fetched", imp.TotalFetched),
		logger.Int("new", imp.NewCount),
		logger.Int("updated", imp.UpdatedCount),
		logger.Int("skipped", imp.SkippedCount),
		logger.Int("errors", imp.ErrorCount),
		logger.Int64("duration_ms", imp.DurationMs),
	)

	return imp
}

// runSearch runs one keyword (or category query) against every adapter in
// sequence. One provider's failure never prevents the others from running.
func (a *Aggregator) runSearch(
	ctx context.Context,
	portal Portal,
	keyword string,
	categoryTag string,
	seen map[string]struct{},
	imp *domain.ImportLog,
	loggedErrors *int,
) {
	opts := provider.FetchOptions{
		Portal:   portal.JobType,
		PortalID: portal.PortalID,
		JobType:  portal.JobType,
		Category: categoryTag,
		MaxPages: a.cfg.MaxPages,
	}

	for _, adapter := range a.adapters {
		jobs, err := adapter.Fetch(ctx, keyword, opts)
		if err != nil {
			imp.ErrorCount++
			a.log.Error("Provider fetch failed",
				logger.String("provider", adapter.Name()),
				logger.String("keyword", keyword),
				logger.String("job_type", portal.JobType),
				logger.Error(err),
			)
			// Partial results collected before the failure are still usable.
		}

		imp.TotalFetched += len(jobs)
		for i := range jobs {
			a.ingest(ctx, portal, jobs[i], seen, imp, loggedErrors)
		}
	}
}

// ingest applies the in-run dedup set and upserts one job.
func (a *Aggregator) ingest(
	ctx context.Context,
	portal Portal,
	job domain.NormalizedJob,
	seen map[string]struct{},
	imp *domain.ImportLog,
	loggedErrors *int,
) {
	if job.Title == "" || job.ExternalURL == "" {
		imp.SkippedCount++
		return
	}

	if _, dup := seen[job.TitleHash]; dup {
		imp.SkippedCount++
		return
	}
	seen[job.TitleHash] = struct{}{}

	outcome, err := a.upsert(ctx, portal, job)
	if err != nil {
		imp.ErrorCount++
		if *loggedErrors < maxLoggedErrors {
			*loggedErrors++
			a.log.Error("Failed to persist job",
				logger.String("source", job.Source),
				logger.String("source_id", job.SourceID),
				logger.String("title", job.Title),
				logger.Error(err),
			)
		}
		return
	}

	switch outcome {
	case outcomeNew:
		imp.NewCount++
	case outcomeUpdated:
		imp.UpdatedCount++
	case outcomeSkipped:
		imp.SkippedCount++
	}
}

// upsert resolves one normalized job against the persisted mirror: update on
// a (source, sourceId) match, skip on an active cross-source title-hash
// match, create otherwise.
func (a *Aggregator) upsert(ctx context.Context, portal Portal, job domain.NormalizedJob) (string, error) {
	existing, err := a.jobs.FindBySourceID(ctx, job.Source, job.SourceID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if err := a.jobs.MarkSeen(ctx, existing.ID, job); err != nil {
			return "", err
		}
		return outcomeUpdated, nil
	}

	// The same listing may have been imported in an earlier run under a
	// different provider's ID.
	duplicate, err := a.jobs.HasActiveTitleHash(ctx, job.TitleHash, portal.PortalID)
	if err != nil {
		return "", err
	}
	if duplicate {
		return outcomeSkipped, nil
	}

	record := a.buildRecord(portal, job)
	if err := a.jobs.Create(ctx, record); err != nil {
		return "", err
	}
	return outcomeNew, nil
}

func (a *Aggregator) buildRecord(portal Portal, job domain.NormalizedJob) *domain.ExternalJob {
	now := time.Now()

	record := &domain.ExternalJob{
		Source:      job.Source,
		SourceID:    job.SourceID,
		Title:       job.Title,
		Description: job.Description,
		Latitude:    job.Latitude,
		Longitude:   job.Longitude,
		SalaryMin:   job.SalaryMin,
		SalaryMax:   job.SalaryMax,
		SalaryUnit:  string(job.SalaryUnit),
		Category:    job.Category,
		CategoryTag: job.CategoryTag,
		ExternalURL: job.ExternalURL,
		PublishedAt: job.PublishedAt,
		TitleHash:   job.TitleHash,
		Slug:        job.Slug,
		JobType:     portal.JobType,
		PortalID:    portal.PortalID,
		IsActive:    true,
		LastSeenAt:  now,
		ExpiresAt:   now.AddDate(0, 0, a.cfg.ExpiryDays),
	}

	if job.CompanyName != "" {
		record.CompanyName = &job.CompanyName
	}
	if job.City != "" {
		record.City = &job.City
	}
	if job.PostalCode != "" {
		record.PostalCode = &job.PostalCode
	}

	return record
}

// SweepStale deactivates every record not observed within the freshness
// window. Providers give no explicit removal signal, so this is how silently
// disappeared listings eventually stop being surfaced.
func (a *Aggregator) SweepStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(a.cfg.FreshnessDays) * hoursPerDay * time.Hour)

	count, err := a.jobs.DeactivateStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deactivate stale jobs: %w", err)
	}

	if count > 0 {
		a.log.Info("Deactivated stale jobs",
			logger.Int64("count", count),
			logger.Time("cutoff", cutoff),
		)
	}

	return count, nil
}
