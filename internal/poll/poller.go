package poll

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Poller fires one cycle per tick. Cycles must never overlap (an overlap
// could double-deliver against a store loaded at the old cycle's start), so
// a tick that lands while a cycle is still running is skipped, not queued.
type Poller struct {
	interval time.Duration
	deps     Deps
	busy     atomic.Bool
}

func NewPoller(interval time.Duration, deps Deps) *Poller {
	return &Poller{interval: interval, deps: deps}
}

// Run blocks until ctx is canceled. The first cycle starts immediately.
func (p *Poller) Run(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	go p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			go p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if !p.busy.CompareAndSwap(false, true) {
		log.Printf("[poll] previous cycle still running, skipping tick")
		return
	}
	defer p.busy.Store(false)

	start := time.Now()
	sent, committed := RunOnce(ctx, p.deps)
	log.Printf("[poll] cycle done sent=%d committed=%d took=%s", sent, committed, time.Since(start).Round(time.Millisecond))
}
