// Package provider contains the source adapters, one per external job-search
// API. Every adapter speaks the same contract and feeds raw provider records
// through the normalize package before returning them.
package provider

import (
	"context"
	"strings"
	"time"

	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/jonesrussell/gojobs/internal/normalize"
)

// FetchOptions carries the per-portal context for a keyword search.
type FetchOptions struct {
	Portal   string // portal slug, selects per-portal credentials
	PortalID int
	JobType  string
	Category string // optional provider category tag
	MaxPages int
}

// Adapter is the contract every source adapter implements. Fetch paginates
// until the provider signals no more results, MaxPages is reached or the
// adapter's request budget for the run is exhausted.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, keyword string, opts FetchOptions) ([]domain.NormalizedJob, error)
	Budget() *Budget
}

// finalizeJob fills the derived fields shared by all adapters and reports
// whether the record is persistable. Records with no title or URL are dropped
// here, before they ever reach the orchestrator.
func finalizeJob(job *domain.NormalizedJob) bool {
	job.Title = strings.TrimSpace(job.Title)
	job.ExternalURL = strings.TrimSpace(job.ExternalURL)
	if job.Title == "" || job.ExternalURL == "" {
		return false
	}

	if job.SourceID == "" {
		job.SourceID = normalize.URLHash(job.ExternalURL)
	}
	if job.SalaryUnit == "" {
		job.SalaryUnit = domain.SalaryMonth
	}
	job.Slug = normalize.Slug(job.Title, job.CompanyName)
	job.TitleHash = normalize.TitleHash(job.Title, job.CompanyName, job.City)
	return true
}

// sleepPage waits the politeness delay between successive page requests,
// aborting early when the context is done.
func sleepPage(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}
