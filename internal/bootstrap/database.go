package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gojobs/internal/config"
	"github.com/jonesrussell/gojobs/internal/database"
	"github.com/jonesrussell/gojobs/internal/logger"
)

const schemaTimeout = 30 * time.Second

// SetupDatabase connects to Postgres and ensures the schema exists.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*sqlx.DB, error) {
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.String("dbname", cfg.Database.DBName),
	)

	return db, nil
}
