// Package companysites fans one site-scoped query per (company, site) pair
// out through the JSearch API and concatenates the results in directory
// order.
package companysites

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"jobwatch-bot/internal/companies"
	"jobwatch-bot/internal/domain"
	"jobwatch-bot/internal/source/jsearch"
)

type Config struct {
	Role      string // query term, e.g. "data analyst"
	Companies []companies.Company
}

type Scraper struct {
	cfg Config
	js  *jsearch.Client
}

func New(cfg Config, js *jsearch.Client) *Scraper {
	return &Scraper{cfg: cfg, js: js}
}

func (s *Scraper) Name() string { return "companysites" }

type pair struct {
	company companies.Company
	site    string
}

func (s *Scraper) Fetch(ctx context.Context) ([]domain.Job, error) {
	var pairs []pair
	for _, co := range s.cfg.Companies {
		// companies without sites never made it past the loader, but the
		// directory may be handed to us straight from config
		for _, site := range co.Sites {
			pairs = append(pairs, pair{company: co, site: site})
		}
	}

	const workers = 4

	// Results are written by pair index so the merge order stays the
	// directory order no matter which worker finishes first.
	results := make([][]domain.Job, len(pairs))
	workCh := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range workCh {
				p := pairs[idx]
				cctx, cancel := context.WithTimeout(ctx, 20*time.Second)
				jobs, err := s.fetchPair(cctx, p)
				cancel()
				if err != nil {
					log.Printf("[companysites] company=%q site=%q err=%v", p.company.Name, p.site, err)
					continue
				}
				results[idx] = jobs
			}
		}()
	}

	go func() {
		defer close(workCh)
		for i := range pairs {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	wg.Wait()

	var out []domain.Job
	for _, batch := range results {
		out = append(out, batch...)
	}
	log.Printf("[companysites] pairs=%d jobs=%d", len(pairs), len(out))
	return out, nil
}

func (s *Scraper) fetchPair(ctx context.Context, p pair) ([]domain.Job, error) {
	query := fmt.Sprintf("%s %s site:%s", s.cfg.Role, p.company.Name, p.site)

	jobs, err := s.js.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].Source = "companysites"
		if jobs[i].Company == "" {
			jobs[i].Company = p.company.Name
		}
	}
	return jobs, nil
}
