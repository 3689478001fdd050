package storage

import (
	"sync"
	"time"
)

// sweepGate runs an expiry sweep at most once per interval. A failed sweep
// leaves the gate open so the next access retries it.
type sweepGate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newSweepGate(interval time.Duration, start time.Time) *sweepGate {
	return &sweepGate{interval: interval, last: start}
}

func (g *sweepGate) run(now time.Time, sweep func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if now.Sub(g.last) < g.interval {
		return nil
	}
	if err := sweep(); err != nil {
		return err
	}
	g.last = now
	return nil
}

func (g *sweepGate) lastRun() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// rewind makes the next run due immediately.
func (g *sweepGate) rewind() {
	g.mu.Lock()
	g.last = time.Time{}
	g.mu.Unlock()
}
