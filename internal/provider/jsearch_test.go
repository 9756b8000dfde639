package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonesrussell/gojobs/internal/config"
	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsearchTestConfig(baseURL string) (config.JSearchConfig, config.ImportConfig) {
	return config.JSearchConfig{
			BaseURL:    baseURL,
			APIKey:     "rapid-key",
			Host:       "jsearch.p.rapidapi.com",
			DailyQuota: 100,
		}, config.ImportConfig{
			MaxPages:       3,
			PageDelay:      0,
			RequestTimeout: 5 * time.Second,
		}
}

func TestJSearchFetch_SendsAuthHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rapid-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "jsearch.p.rapidapi.com", r.Header.Get("X-RapidAPI-Host"))
		assert.Equal(t, "praktikum marketing", r.URL.Query().Get("query"))

		payload, _ := json.Marshal(map[string]any{
			"data": []map[string]any{{
				"job_id":                     "abc",
				"job_title":                  "Praktikum Marketing",
				"job_description":            "desc",
				"employer_name":              "Agentur X",
				"job_city":                   "Hamburg",
				"job_min_salary":             14.5,
				"job_max_salary":             16.0,
				"job_salary_period":          "HOUR",
				"job_apply_link":             "https://jobs.example.com/abc",
				"job_posted_at_datetime_utc": "2026-08-22T09:30:00Z",
			}},
		})
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	cfg, imp := jsearchTestConfig(server.URL)
	adapter := NewJSearchAdapter(cfg, imp, logger.NewNopLogger())

	jobs, err := adapter.Fetch(context.Background(), "praktikum marketing", FetchOptions{MaxPages: 1})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "jsearch", job.Source)
	assert.Equal(t, "abc", job.SourceID)
	assert.Equal(t, "marketing", job.CategoryTag)
	assert.Equal(t, domain.SalaryHour, job.SalaryUnit)
	require.NotNil(t, job.SalaryMin)
	assert.InDelta(t, 14.5, *job.SalaryMin, 0.001)
	assert.InDelta(t, 16.0, *job.SalaryMax, 0.001)
}

func TestJSearchFetch_MissingKeySkips(t *testing.T) {
	cfg, imp := jsearchTestConfig("http://unused")
	cfg.APIKey = ""
	adapter := NewJSearchAdapter(cfg, imp, logger.NewNopLogger())

	jobs, err := adapter.Fetch(context.Background(), "test", FetchOptions{MaxPages: 3})
	require.NoError(t, err)
	assert.Nil(t, jobs)
}

func TestJSearchFetch_BudgetHaltsRequests(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	cfg, imp := jsearchTestConfig(server.URL)
	adapter := NewJSearchAdapter(cfg, imp, logger.NewNopLogger())
	adapter.Budget().Exhaust()

	jobs, err := adapter.Fetch(context.Background(), "test", FetchOptions{MaxPages: 3})
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Equal(t, 0, requests)
}
