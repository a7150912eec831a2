// Package poll runs the fetch/filter/deliver cycle and the ticker that
// drives it.
package poll

import (
	"context"
	"log"
	"time"

	"jobwatch-bot/internal/domain"
	"jobwatch-bot/internal/enrich"
	"jobwatch-bot/internal/seen"
	"jobwatch-bot/internal/source"

	"golang.org/x/sync/errgroup"
)

// Notifier is what the cycle needs from the delivery side.
type Notifier interface {
	Deliver(ctx context.Context, j domain.Job) error
}

type Deps struct {
	Fetchers     []source.Fetcher
	Store        seen.Store
	Notifier     Notifier
	Policy       enrich.Policy
	FetchTimeout time.Duration
}

// RunOnce executes one full cycle and reports messages sent and ids
// committed. Failures never abort it: a failing adapter contributes nothing,
// a failed delivery leaves its id uncommitted so the next cycle retries it,
// and a failed commit is logged rather than papered over. The id is
// committed only after the send succeeded, so delivery is at-least-once,
// not exactly-once. sent > committed means commits failed and some postings
// may repeat.
func RunOnce(ctx context.Context, d Deps) (sent, committed int) {
	timeout := d.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Fetching: adapters hit independent upstreams, so they run in
	// parallel. Results land in a slice indexed by adapter position, which
	// keeps the merge order deterministic regardless of finish order.
	results := make([][]domain.Job, len(d.Fetchers))

	var g errgroup.Group
	for i, f := range d.Fetchers {
		i, f := i, f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			jobs, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[%s] fetch error: %v", f.Name(), err)
				return nil // best effort: never cancel siblings
			}
			log.Printf("[%s] fetched %d listings", f.Name(), len(jobs))
			results[i] = jobs
			return nil
		})
	}
	_ = g.Wait()

	// Filtering: merge in adapter order, drop anything already delivered or
	// repeated within this cycle, then enrich and apply the pre-filter.
	inCycle := make(map[string]bool)
	var candidates []domain.Job
	for _, batch := range results {
		for _, j := range batch {
			if j.ID == "" || inCycle[j.ID] {
				continue
			}
			inCycle[j.ID] = true
			if d.Store.Contains(j.ID) {
				continue
			}
			ej, keep := enrich.Apply(j, d.Policy)
			if !keep {
				log.Printf("[poll] skipped (no sponsor signal) source=%s id=%s title=%q", j.Source, j.ID, j.Title)
				continue
			}
			candidates = append(candidates, ej)
		}
	}

	// Delivering: strictly sequential, commit after each successful send.
	for _, j := range candidates {
		if err := d.Notifier.Deliver(ctx, j); err != nil {
			log.Printf("[poll] deliver failed source=%s id=%s err=%v (will retry next cycle)", j.Source, j.ID, err)
			continue
		}
		sent++
		if err := d.Store.Commit(j.ID); err != nil {
			// The message went out but the id didn't stick; the posting
			// may repeat next cycle. Never pretend the commit worked.
			log.Printf("[poll] commit failed id=%s err=%v", j.ID, err)
			continue
		}
		committed++
		log.Printf("[poll] posted source=%s id=%s title=%q", j.Source, j.ID, j.Title)
	}

	return sent, committed
}
