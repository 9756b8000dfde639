package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gojobs/internal/logger"
)

// ImportTrigger starts one import cycle without waiting for it.
type ImportTrigger interface {
	TriggerAsync()
}

// ImportHandler exposes the manual import trigger. The endpoint returns
// immediately; run progress lands in the import logs.
type ImportHandler struct {
	trigger ImportTrigger
	logger  logger.Logger
}

func NewImportHandler(trigger ImportTrigger, log logger.Logger) *ImportHandler {
	return &ImportHandler{
		trigger: trigger,
		logger:  log,
	}
}

func (h *ImportHandler) Trigger(c *gin.Context) {
	h.logger.Info("Import requested via API",
		logger.String("client_ip", c.ClientIP()),
	)

	h.trigger.TriggerAsync()

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Import started, check /api/v1/stats for progress",
	})
}
