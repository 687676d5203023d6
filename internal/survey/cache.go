package survey

import (
	"context"
	"sync"
	"time"

	"github.com/quantumfamily/archetype/internal/monitoring"
	"github.com/quantumfamily/archetype/internal/timeutil"
)

var logf = monitoring.Prefixed("survey")

// CachedSource serves the last successful fetch of an upstream Source for
// ttl. Failed fetches are not cached. A zero ttl passes every call through.
type CachedSource struct {
	src   Source
	ttl   time.Duration
	clock timeutil.Clock

	mu        sync.Mutex
	rows      []Row
	fetchedAt time.Time
	valid     bool
}

// NewCachedSource wraps src. A nil clock uses the real clock.
func NewCachedSource(src Source, ttl time.Duration, clock timeutil.Clock) *CachedSource {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &CachedSource{src: src, ttl: ttl, clock: clock}
}

// Rows returns cached rows while fresh, otherwise fetches from upstream.
func (c *CachedSource) Rows(ctx context.Context) ([]Row, error) {
	if c.ttl <= 0 {
		return c.src.Rows(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.clock.Since(c.fetchedAt) < c.ttl {
		return c.rows, nil
	}

	rows, err := c.src.Rows(ctx)
	if err != nil {
		return nil, err
	}
	c.rows = rows
	c.fetchedAt = c.clock.Now()
	c.valid = true
	return rows, nil
}

// Invalidate drops the cached snapshot.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.rows = nil
}
