package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/gojobs/internal/config"
	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/normalize"
)

const (
	joobleSource   = "jooble"
	jooblePageSize = 20
)

// JoobleAdapter wraps the Jooble search API. The API key is an affiliate
// identifier carried in the URL path, one per portal. Jooble exposes no
// stable listing identifier, so one is derived from the listing URL.
type JoobleAdapter struct {
	cfg       config.JoobleConfig
	client    *http.Client
	budget    *Budget
	pageDelay time.Duration
	log       logger.Logger
}

func NewJoobleAdapter(cfg config.JoobleConfig, imp config.ImportConfig, log logger.Logger) *JoobleAdapter {
	return &JoobleAdapter{
		cfg:       cfg,
		client:    &http.Client{Timeout: imp.RequestTimeout},
		budget:    NewBudget(joobleSource, cfg.DailyQuota, log),
		pageDelay: imp.PageDelay,
		log:       log,
	}
}

func (j *JoobleAdapter) Name() string { return joobleSource }

func (j *JoobleAdapter) Budget() *Budget { return j.budget }

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Page     int    `json:"page"`
}

type joobleResponse struct {
	TotalCount int            `json:"totalCount"`
	Jobs       []joobleResult `json:"jobs"`
}

type joobleResult struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Snippet  string `json:"snippet"`
	Salary   string `json:"salary"`
	Company  string `json:"company"`
	Link     string `json:"link"`
	Updated  string `json:"updated"`
}

// Fetch pages through Jooble results for one keyword using the portal's
// affiliate key. Portals without a configured key are skipped softly.
func (j *JoobleAdapter) Fetch(ctx context.Context, keyword string, opts FetchOptions) ([]domain.NormalizedJob, error) {
	apiKey := j.cfg.APIKeys[opts.Portal]
	if apiKey == "" {
		j.log.Warn("Jooble key not configured for portal, skipping",
			logger.String("portal", opts.Portal),
		)
		return nil, nil
	}

	var jobs []domain.NormalizedJob

	for page := 1; page <= opts.MaxPages; page++ {
		if !j.budget.Acquire() {
			break
		}

		batch, rateLimited, err := j.fetchPage(ctx, apiKey, keyword, page)
		if err != nil {
			return jobs, fmt.Errorf("jooble page %d: %w", page, err)
		}
		if rateLimited {
			j.budget.Exhaust()
			return jobs, nil
		}

		for _, raw := range batch {
			if job, ok := j.normalizeResult(raw); ok {
				jobs = append(jobs, job)
			}
		}

		if len(batch) < jooblePageSize {
			break
		}
		sleepPage(ctx, j.pageDelay)
	}

	return jobs, nil
}

func (j *JoobleAdapter) fetchPage(ctx context.Context, apiKey, keyword string, page int) ([]joobleResult, bool, error) {
	payload, err := json.Marshal(joobleRequest{Keywords: keyword, Page: page})
	if err != nil {
		return nil, false, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := j.cfg.BaseURL + "/" + apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		j.log.Warn("Jooble rate limit hit",
			logger.String("keyword", keyword),
			logger.Int("page", page),
		)
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read body: %w", err)
	}

	var parsed joobleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Jobs, false, nil
}

func (j *JoobleAdapter) normalizeResult(raw joobleResult) (domain.NormalizedJob, bool) {
	job := domain.NormalizedJob{
		Source:      joobleSource,
		Title:       raw.Title,
		Description: raw.Snippet,
		CompanyName: raw.Company,
		City:        normalize.City(raw.Location),
		ExternalURL: raw.Link,
	}

	job.SalaryMin, job.SalaryMax, job.SalaryUnit = normalize.Salary(raw.Salary)

	category := normalize.CategoryFromTitle(raw.Title)
	job.Category = category.Label
	job.CategoryTag = category.Slug

	if raw.Updated != "" {
		if published, err := time.Parse(time.RFC3339, raw.Updated); err == nil {
			job.PublishedAt = &published
		}
	}

	// SourceID stays empty: finalizeJob derives it from the listing URL.
	return job, finalizeJob(&job)
}
