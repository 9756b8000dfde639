package provider

import (
	"sync"

	"github.com/jonesrussell/gojobs/internal/logger"
)

// softCeilingRatio stops an adapter slightly below its documented daily quota
// so a run never burns the last few requests another consumer may need.
const softCeilingRatio = 0.95

// Budget tracks one adapter's request count against its daily quota. It is
// the only mutable state shared across portal runs within a cycle, so all
// access goes through the mutex. The scheduler resets it once per cycle.
type Budget struct {
	mu     sync.Mutex
	name   string
	quota  int
	used   int
	warned bool
	log    logger.Logger
}

func NewBudget(name string, quota int, log logger.Logger) *Budget {
	return &Budget{name: name, quota: quota, log: log}
}

// Acquire reserves one request slot. It returns false once the soft ceiling
// is reached; the caller must not issue the request in that case.
func (b *Budget) Acquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ceiling := int(float64(b.quota) * softCeilingRatio)
	if b.used >= ceiling {
		if !b.warned {
			b.warned = true
			b.log.Warn("Request budget exhausted, halting until next cycle",
				logger.String("provider", b.name),
				logger.Int("used", b.used),
				logger.Int("quota", b.quota),
			)
		}
		return false
	}

	b.used++
	return true
}

// Exhaust forces the counter to the quota ceiling. Called on HTTP 429 so no
// further requests are attempted this run.
func (b *Budget) Exhaust() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = b.quota
}

// Reset zeroes the counter at the start of a scheduled cycle.
func (b *Budget) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = 0
	b.warned = false
}

func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

func (b *Budget) Quota() int {
	return b.quota
}
