package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonesrussell/gojobs/internal/config"
	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/normalize"
)

const (
	adzunaSource   = "adzuna"
	adzunaPageSize = 50
)

// AdzunaAdapter wraps the Adzuna job-search API. Authentication is an app
// id/key pair in the query string; listings carry native numeric IDs and
// annual salary figures.
type AdzunaAdapter struct {
	cfg       config.AdzunaConfig
	client    *http.Client
	budget    *Budget
	pageDelay time.Duration
	log       logger.Logger
}

func NewAdzunaAdapter(cfg config.AdzunaConfig, imp config.ImportConfig, log logger.Logger) *AdzunaAdapter {
	return &AdzunaAdapter{
		cfg:       cfg,
		client:    &http.Client{Timeout: imp.RequestTimeout},
		budget:    NewBudget(adzunaSource, cfg.DailyQuota, log),
		pageDelay: imp.PageDelay,
		log:       log,
	}
}

func (a *AdzunaAdapter) Name() string { return adzunaSource }

func (a *AdzunaAdapter) Budget() *Budget { return a.budget }

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	RedirectURL string  `json:"redirect_url"`
	Created     string  `json:"created"`
	Category    struct {
		Tag   string `json:"tag"`
		Label string `json:"label"`
	} `json:"category"`
}

// Fetch pages through Adzuna search results for one keyword.
func (a *AdzunaAdapter) Fetch(ctx context.Context, keyword string, opts FetchOptions) ([]domain.NormalizedJob, error) {
	if a.cfg.AppID == "" || a.cfg.AppKey == "" {
		a.log.Warn("Adzuna credentials not configured, skipping", logger.String("keyword", keyword))
		return nil, nil
	}

	var jobs []domain.NormalizedJob

	for page := 1; page <= opts.MaxPages; page++ {
		if !a.budget.Acquire() {
			break
		}

		batch, rateLimited, err := a.fetchPage(ctx, keyword, opts, page)
		if err != nil {
			return jobs, fmt.Errorf("adzuna page %d: %w", page, err)
		}
		if rateLimited {
			a.budget.Exhaust()
			return jobs, nil
		}

		for _, raw := range batch {
			if job, ok := a.normalizeResult(raw); ok {
				jobs = append(jobs, job)
			}
		}

		if len(batch) < adzunaPageSize {
			break
		}
		sleepPage(ctx, a.pageDelay)
	}

	return jobs, nil
}

func (a *AdzunaAdapter) fetchPage(
	ctx context.Context,
	keyword string,
	opts FetchOptions,
	page int,
) ([]adzunaResult, bool, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", a.cfg.BaseURL, a.cfg.Country, page)

	params := url.Values{}
	params.Set("app_id", a.cfg.AppID)
	params.Set("app_key", a.cfg.AppKey)
	params.Set("what", keyword)
	params.Set("results_per_page", strconv.Itoa(adzunaPageSize))
	params.Set("content-type", "application/json")
	if opts.Category != "" {
		params.Set("category", opts.Category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		a.log.Warn("Adzuna rate limit hit",
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

	var parsed adzunaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Results, false, nil
}

func (a *AdzunaAdapter) normalizeResult(raw adzunaResult) (domain.NormalizedJob, bool) {
	job := domain.NormalizedJob{
		Source:      adzunaSource,
		SourceID:    raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		CompanyName: raw.Company.DisplayName,
		City:        normalize.City(raw.Location.DisplayName),
		ExternalURL: raw.RedirectURL,
	}

	if raw.Latitude != 0 || raw.Longitude != 0 {
		lat, lon := raw.Latitude, raw.Longitude
		job.Latitude = &lat
		job.Longitude = &lon
	}

	job.SalaryMin, job.SalaryMax, job.SalaryUnit = normalize.StructuredSalary(raw.SalaryMin, raw.SalaryMax)

	category := normalize.CategoryFromTitle(raw.Title)
	if raw.Category.Tag != "" {
		category = normalize.CategoryFromTag(raw.Category.Tag)
	}
	job.Category = category.Label
	job.CategoryTag = category.Slug

	if raw.Created != "" {
		if published, err := time.Parse(time.RFC3339, raw.Created); err == nil {
			job.PublishedAt = &published
		}
	}

	return job, finalizeJob(&job)
}
