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
	jsearchSource   = "jsearch"
	jsearchPageSize = 10
)

// JSearchAdapter wraps the JSearch API on RapidAPI. Authentication is an API
// key in the request headers; listings carry native IDs and a structured
// salary period.
type JSearchAdapter struct {
	cfg       config.JSearchConfig
	client    *http.Client
	budget    *Budget
	pageDelay time.Duration
	log       logger.Logger
}

func NewJSearchAdapter(cfg config.JSearchConfig, imp config.ImportConfig, log logger.Logger) *JSearchAdapter {
	return &JSearchAdapter{
		cfg:       cfg,
		client:    &http.Client{Timeout: imp.RequestTimeout},
		budget:    NewBudget(jsearchSource, cfg.DailyQuota, log),
		pageDelay: imp.PageDelay,
		log:       log,
	}
}

func (a *JSearchAdapter) Name() string { return jsearchSource }

func (a *JSearchAdapter) Budget() *Budget { return a.budget }

type jsearchResponse struct {
	Data []jsearchResult `json:"data"`
}

type jsearchResult struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"job_title"`
	Description    string   `json:"job_description"`
	EmployerName   string   `json:"employer_name"`
	City           string   `json:"job_city"`
	PostalCode     string   `json:"job_postal_code"`
	Latitude       *float64 `json:"job_latitude"`
	Longitude      *float64 `json:"job_longitude"`
	MinSalary      float64  `json:"job_min_salary"`
	MaxSalary      float64  `json:"job_max_salary"`
	SalaryPeriod   string   `json:"job_salary_period"`
	ApplyLink      string   `json:"job_apply_link"`
	PostedDateTime string   `json:"job_posted_at_datetime_utc"`
}

// Fetch pages through JSearch results for one keyword.
func (a *JSearchAdapter) Fetch(ctx context.Context, keyword string, opts FetchOptions) ([]domain.NormalizedJob, error) {
	if a.cfg.APIKey == "" {
		a.log.Warn("JSearch API key not configured, skipping", logger.String("keyword", keyword))
		return nil, nil
	}

	var jobs []domain.NormalizedJob

	for page := 1; page <= opts.MaxPages; page++ {
		if !a.budget.Acquire() {
			break
		}

		batch, rateLimited, err := a.fetchPage(ctx, keyword, page)
		if err != nil {
			return jobs, fmt.Errorf("jsearch page %d: %w", page, err)
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

		if len(batch) < jsearchPageSize {
			break
		}
		sleepPage(ctx, a.pageDelay)
	}

	return jobs, nil
}

func (a *JSearchAdapter) fetchPage(ctx context.Context, keyword string, page int) ([]jsearchResult, bool, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("X-RapidAPI-Key", a.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", a.cfg.Host)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		a.log.Warn("JSearch rate limit hit",
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

	var parsed jsearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Data, false, nil
}

func (a *JSearchAdapter) normalizeResult(raw jsearchResult) (domain.NormalizedJob, bool) {
	job := domain.NormalizedJob{
		Source:      jsearchSource,
		SourceID:    raw.JobID,
		Title:       raw.Title,
		Description: raw.Description,
		CompanyName: raw.EmployerName,
		City:        normalize.City(raw.City),
		PostalCode:  raw.PostalCode,
		Latitude:    raw.Latitude,
		Longitude:   raw.Longitude,
		ExternalURL: raw.ApplyLink,
	}

	job.SalaryMin, job.SalaryMax, job.SalaryUnit = normalize.StructuredSalary(raw.MinSalary, raw.MaxSalary)
	if unit, ok := salaryPeriodUnit(raw.SalaryPeriod); ok && raw.MinSalary > 0 {
		// The provider was explicit about the period; trust it over the
		// magnitude heuristic.
		minSalary, maxSalary := raw.MinSalary, raw.MaxSalary
		if maxSalary <= 0 {
			maxSalary = minSalary
		}
		job.SalaryMin, job.SalaryMax, job.SalaryUnit = &minSalary, &maxSalary, unit
	}

	category := normalize.CategoryFromTitle(raw.Title)
	job.Category = category.Label
	job.CategoryTag = category.Slug

	if raw.PostedDateTime != "" {
		if published, err := time.Parse(time.RFC3339, raw.PostedDateTime); err == nil {
			job.PublishedAt = &published
		}
	}

	return job, finalizeJob(&job)
}

func salaryPeriodUnit(period string) (domain.SalaryUnit, bool) {
	switch period {
	case "HOUR":
		return domain.SalaryHour, true
	case "MONTH":
		return domain.SalaryMonth, true
	case "YEAR":
		return domain.SalaryYear, true
	default:
		return "", false
	}
}
