package quota

import (
	"context"
	"fmt"
	"time"
)

// Store persists the per-day run counter. Implementations: Postgres for the
// service, an in-memory map for tests and single-node development.
type Store interface {
	Get(ctx context.Context, day string) (int, error)
	Increment(ctx context.Context, day string) error
	Clear(ctx context.Context, day string) error
}

// ExceededError reports that today's run budget is spent.
type ExceededError struct {
	Limit int
	Used  int
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("daily run limit reached (%d of %d used)", e.Used, e.Limit)
}

// Gate enforces the daily run budget. The counter rolls over automatically at
// local-date boundaries because the storage key is the local date itself.
type Gate struct {
	store Store
	limit int
	now   func() time.Time
}

func NewGate(store Store, limit int) *Gate {
	return &Gate{store: store, limit: limit, now: time.Now}
}

// NewGateAt is like NewGate with an injected clock.
func NewGateAt(store Store, limit int, now func() time.Time) *Gate {
	return &Gate{store: store, limit: limit, now: now}
}

func (g *Gate) day() string {
	return g.now().Local().Format("2006-01-02")
}

// CanRun reports whether another run fits in today's budget, and how many
// runs remain.
func (g *Gate) CanRun(ctx context.Context) (bool, int, error) {
	used, err := g.store.Get(ctx, g.day())
	if err != nil {
		return false, 0, err
	}
	remaining := g.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return used < g.limit, remaining, nil
}

// Check returns an ExceededError when today's budget is spent, nil otherwise.
func (g *Gate) Check(ctx context.Context) error {
	used, err := g.store.Get(ctx, g.day())
	if err != nil {
		return err
	}
	if used >= g.limit {
		return &ExceededError{Limit: g.limit, Used: used}
	}
	return nil
}

// RecordRun consumes one unit of today's budget. Callers invoke it exactly
// once per run that produced at least one extracted record. The increment is
// a single store operation, so concurrent runs never lose a count.
func (g *Gate) RecordRun(ctx context.Context) error {
	return g.store.Increment(ctx, g.day())
}

// Used returns today's consumed run count.
func (g *Gate) Used(ctx context.Context) (int, error) {
	return g.store.Get(ctx, g.day())
}

// Limit returns the configured daily ceiling.
func (g *Gate) Limit() int { return g.limit }
