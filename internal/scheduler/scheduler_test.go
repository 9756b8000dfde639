package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gojobs/internal/aggregator"
	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/jonesrussell/gojobs/internal/logger"
	"github.com/jonesrussell/gojobs/internal/provider"
)

type fakeRunner struct {
	mu    sync.Mutex
	runs  int
	done  chan struct{}
	panic bool
}

func (r *fakeRunner) RunAll(_ context.Context) aggregator.CycleSummary {
	r.mu.Lock()
	r.runs++
	r.mu.Unlock()
	if r.done != nil {
		close(r.done)
	}
	if r.panic {
		panic("cycle blew up")
	}
	return aggregator.CycleSummary{}
}

func (r *fakeRunner) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

type fixedAdapter struct {
	budget *provider.Budget
}

func (a *fixedAdapter) Name() string { return "fixed" }

func (a *fixedAdapter) Fetch(context.Context, string, provider.FetchOptions) ([]domain.NormalizedJob, error) {
	return nil, nil
}

func (a *fixedAdapter) Budget() *provider.Budget { return a.budget }

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New(&fakeRunner{}, nil, "not-a-cron-spec", logger.NewNopLogger())
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-cron-spec")
}

func TestStartAndStop(t *testing.T) {
	s := New(&fakeRunner{}, nil, "0 4 * * *", logger.NewNopLogger())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestTriggerAsyncRunsCycleAndResetsBudgets(t *testing.T) {
	budget := provider.NewBudget("fixed", 10, logger.NewNopLogger())
	for i := 0; i < 5; i++ {
		require.True(t, budget.Acquire())
	}
	require.Equal(t, 5, budget.Used())

	runner := &fakeRunner{done: make(chan struct{})}
	s := New(runner, []provider.Adapter{&fixedAdapter{budget: budget}}, "0 4 * * *", logger.NewNopLogger())

	s.TriggerAsync()

	select {
	case <-runner.done:
	case <-time.After(2 * time.Second):
		t.Fatal("import cycle never ran")
	}

	assert.Equal(t, 1, runner.runCount())
	assert.Equal(t, 0, budget.Used())
}

func TestRunCyclePanicIsRecovered(t *testing.T) {
	runner := &fakeRunner{done: make(chan struct{}), panic: true}
	s := New(runner, nil, "0 4 * * *", logger.NewNopLogger())

	assert.NotPanics(t, func() {
		s.runCycle(context.Background())
	})
	assert.Equal(t, 1, runner.runCount())
}
