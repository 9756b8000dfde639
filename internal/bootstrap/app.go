// Package bootstrap handles application initialization and lifecycle
// management for the job aggregation service.
package bootstrap

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/gojobs/internal/aggregator"
	"github.com/jonesrussell/gojobs/internal/config"
	"github.com/jonesrussell/gojobs/internal/database"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/provider"
	"github.com/jonesrussell/gojobs/internal/scheduler"
)

// Start runs the long-lived service: HTTP API plus the cron-driven import
// cycle. It blocks until SIGINT or SIGTERM.
func Start(configPath string, debug bool) error {
	app, err := newApp(configPath, debug)
	if err != nil {
		return err
	}
	defer app.Close()

	sched := scheduler.New(app.Aggregator, app.Adapters, app.Config.Import.CronSpec, app.Log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := SetupHTTPServer(app, sched)

	app.Log.Info("Starting HTTP server",
		logger.String("host", app.Config.Server.Host),
		logger.Int("port", app.Config.Server.Port),
	)

	if err := runServer(ctx, server, app.Log); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.Log.Info("Server exited")
	return nil
}

// RunImport runs one full import cycle and exits. Used by the importer
// command for cron-less deployments and manual backfills.
func RunImport(configPath string, debug bool) error {
	app, err := newApp(configPath, debug)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := app.Aggregator.RunAll(ctx)
	if summary.ErrorCount > 0 {
		return fmt.Errorf("import finished with %d errors", summary.ErrorCount)
	}
	return nil
}

// app bundles everything the serve and importer entry points share.
type app struct {
	Config     *config.Config
	Log        logger.Logger
	closeDB    func() error
	Jobs       database.ExternalJobStore
	Imports    database.ImportLogStore
	Aggregator *aggregator.Aggregator
	Adapters   []provider.Adapter
}

func newApp(configPath string, debug bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debug {
		cfg.Debug = true
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	publisher := SetupEventPublisher(cfg, log)
	adapters := SetupAdapters(cfg, log)

	jobs := database.NewExternalJobRepository(db)
	imports := database.NewImportLogRepository(db)

	agg := aggregator.New(
		jobs,
		imports,
		adapters,
		aggregator.DefaultPortals,
		publisher,
		cfg.Import,
		log,
	)

	return &app{
		Config:     cfg,
		Log:        log,
		closeDB:    db.Close,
		Jobs:       jobs,
		Imports:    imports,
		Aggregator: agg,
		Adapters:   adapters,
	}, nil
}

func (a *app) Close() {
	if err := a.closeDB(); err != nil {
		a.Log.Error("Failed to close database", logger.Error(err))
	}
	_ = a.Log.Sync()
}
