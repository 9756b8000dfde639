package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gojobs/internal/database"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/provider"
)

const recentImportLimit = 10

// StatsHandler serves aggregate counts over the persisted job mirror plus
// the current adapter quota usage.
type StatsHandler struct {
	jobs     database.ExternalJobStore
	imports  database.ImportLogStore
	adapters []provider.Adapter
	logger   logger.Logger
}

func NewStatsHandler(
	jobs database.ExternalJobStore,
	imports database.ImportLogStore,
	adapters []provider.Adapter,
	log logger.Logger,
) *StatsHandler {
	return &StatsHandler{
		jobs:     jobs,
		imports:  imports,
		adapters: adapters,
		logger:   log,
	}
}

type adapterUsage struct {
	Name  string `json:"name"`
	Used  int    `json:"used"`
	Quota int    `json:"quota"`
}

func (h *StatsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	totalActive, err := h.jobs.CountActive(ctx)
	if err != nil {
		h.logger.Error("Failed to count active jobs", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	bySource, err := h.jobs.CountBySource(ctx)
	if err != nil {
		h.logger.Error("Failed to count jobs by source", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	byJobType, err := h.jobs.CountByJobType(ctx)
	if err != nil {
		h.logger.Error("Failed to count jobs by job type", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	recent, err := h.imports.Recent(ctx, recentImportLimit)
	if err != nil {
		h.logger.Error("Failed to load recent imports", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	usage := make([]adapterUsage, 0, len(h.adapters))
	for _, adapter := range h.adapters {
		usage = append(usage, adapterUsage{
			Name:  adapter.Name(),
			Used:  adapter.Budget().Used(),
			Quota: adapter.Budget().Quota(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalActive":   totalActive,
		"bySource":      bySource,
		"byJobType":     byJobType,
		"recentImports": recent,
		"adapters":      usage,
	})
}
