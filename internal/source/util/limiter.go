package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter paces outbound requests per hostname (api.adzuna.com,
// jsearch.p.rapidapi.com, ...) so one chatty adapter can't get the whole
// process rate-limited.
type HostLimiter struct {
	perSec rate.Limit
	burst  int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		perSec: rate.Limit(reqPerSec),
		burst:  burst,
		hosts:  make(map[string]*rate.Limiter),
	}
}

// Wait blocks until host may be hit again, creating the host's bucket on
// first use.
func (hl *HostLimiter) Wait(ctx context.Context, host string) error {
	hl.mu.Lock()
	lim, ok := hl.hosts[host]
	if !ok {
		lim = rate.NewLimiter(hl.perSec, hl.burst)
		hl.hosts[host] = lim
	}
	hl.mu.Unlock()
	return lim.Wait(ctx)
}

// WaitURL paces by the hostname of raw. Unparseable URLs share one catch-all
// bucket.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.Wait(ctx, "_")
	}
	return hl.Wait(ctx, u.Host)
}
