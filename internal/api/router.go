package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gojobs/internal/database"
	"github.com/jonesrussell/gojobs/internal/handlers"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/provider"
)

const (
	corsMaxAgeHours = 12
)

func NewRouter(
	jobs database.ExternalJobStore,
	imports database.ImportLogStore,
	adapters []provider.Adapter,
	trigger handlers.ImportTrigger,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "accept", "origin", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")
	statsHandler := handlers.NewStatsHandler(jobs, imports, adapters, log)
	importHandler := handlers.NewImportHandler(trigger, log)

	v1.GET("/stats", statsHandler.Get)
	v1.POST("/trigger-import", importHandler.Trigger)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
