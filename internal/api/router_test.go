package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/gojobs/internal/api"
	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/jonesrussell/gojobs/internal/testhelpers"
)

type noopJobStore struct{}

func (noopJobStore) FindBySourceID(context.Context, string, string) (*domain.ExternalJob, error) {
	return nil, nil
}

func (noopJobStore) HasActiveTitleHash(context.Context, string, int) (bool, error) {
	return false, nil
}

func (noopJobStore) Create(context.Context, *domain.ExternalJob) error { return nil }

func (noopJobStore) MarkSeen(context.Context, int64, domain.NormalizedJob) error { return nil }

func (noopJobStore) DeactivateStale(context.Context, time.Time) (int64, error) { return 0, nil }

func (noopJobStore) CountActive(context.Context) (int, error) { return 0, nil }

func (noopJobStore) CountBySource(context.Context) ([]domain.SourceCount, error) { return nil, nil }

func (noopJobStore) CountByJobType(context.Context) ([]domain.JobTypeCount, error) { return nil, nil }

type noopImportStore struct{}

func (noopImportStore) Create(context.Context, *domain.ImportLog) error   { return nil }
func (noopImportStore) Finalize(context.Context, *domain.ImportLog) error { return nil }

func (noopImportStore) Recent(context.Context, int) ([]domain.ImportLog, error) { return nil, nil }

type noopTrigger struct{}

func (noopTrigger) TriggerAsync() {}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return api.NewRouter(noopJobStore{}, noopImportStore{}, nil, noopTrigger{}, testhelpers.NewTestLogger())
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRoutesAreWired(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/stats", http.StatusOK},
		{http.MethodPost, "/api/v1/trigger-import", http.StatusAccepted},
		{http.MethodGet, "/api/v1/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, tt.path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}
