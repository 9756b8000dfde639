// Package scheduler drives the recurring import cycle. A cron entry fires the
// full cycle once per day; TriggerAsync starts the same cycle on demand
// without waiting for it.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/gojobs/internal/aggregator"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/provider"
)

// ImportRunner runs one full import cycle across all portals.
type ImportRunner interface {
	RunAll(ctx context.Context) aggregator.CycleSummary
}

// Scheduler owns the cron runner and the adapters whose request budgets are
// reset at the start of every cycle.
type Scheduler struct {
	cron     *cron.Cron
	agg      ImportRunner
	adapters []provider.Adapter
	spec     string
	log      logger.Logger
}

func New(agg ImportRunner, adapters []provider.Adapter, spec string, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		agg:      agg,
		adapters: adapters,
		spec:     spec,
		log:      log,
	}
}

// Start registers the cron entry and starts the runner. It does not block.
func (s *Scheduler) Start() error {
	entryID, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(context.Background())
	})
	if err != nil {
		return fmt.Errorf("register import schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info("Import scheduler started",
		logger.String("spec", s.spec),
		logger.Int("entry_id", int(entryID)),
	)
	return nil
}

// TriggerAsync kicks off one import cycle in the background. The caller gets
// no handle on the run; progress is observable through import logs and the
// stats endpoint.
func (s *Scheduler) TriggerAsync() {
	s.log.Info("Manual import triggered")
	go s.runCycle(context.Background())
}

// Stop halts the cron runner and waits for a running entry to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Import scheduler stopped")
}

// runCycle resets all adapter budgets and runs the full import. The recover
// keeps a panicking cycle from killing the cron goroutine.
func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Import cycle panicked", logger.Any("panic", r))
		}
	}()

	for _, adapter := range s.adapters {
		adapter.Budget().Reset()
	}

	s.agg.RunAll(ctx)
}
