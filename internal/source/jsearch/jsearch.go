// Package jsearch fetches listings from the JSearch API on RapidAPI, which
// aggregates search-engine job results. Recency comes back as a relative
// phrase ("3 hours ago"), so the window check parses phrases instead of
// timestamps.
package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobwatch-bot/internal/domain"
	"jobwatch-bot/internal/source/util"
)

const (
	defaultBaseURL = "https://jsearch.p.rapidapi.com"
	rapidAPIHost   = "jsearch.p.rapidapi.com"
)

type Config struct {
	APIKey  string
	Query   string
	Country string
	MaxAge  time.Duration // relative-phrase window, normally 24h
	BaseURL string        // override for tests
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 24 * time.Hour
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 25 * time.Second},
		limiter: limiter,
	}
}

func (c *Client) Name() string { return "jsearch" }

type searchResponse struct {
	Data []listing `json:"data"`
}

type listing struct {
	JobID       string `json:"job_id"`
	Title       string `json:"job_title"`
	Employer    string `json:"employer_name"`
	City        string `json:"job_city"`
	State       string `json:"job_state"`
	Country     string `json:"job_country"`
	Description string `json:"job_description"`
	ApplyLink   string `json:"job_apply_link"`
	PostedAt    string `json:"job_posted_at"` // relative phrase
}

func (c *Client) Fetch(ctx context.Context) ([]domain.Job, error) {
	return c.Search(ctx, c.cfg.Query)
}

// Search runs one single-page query. Exposed so the per-company-site source
// can fan out scoped queries through the same client.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Job, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("num_pages", "1")
	q.Set("country", c.cfg.Country)
	q.Set("date_posted", "today")

	u := c.cfg.BaseURL + "/search?" + q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "jobwatch/1.0 (+local)")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsearch get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("jsearch status %d", res.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("jsearch decode: %w", err)
	}

	out := make([]domain.Job, 0, len(sr.Data))
	for _, l := range sr.Data {
		id := strings.TrimSpace(l.JobID)
		title := util.CleanText(l.Title)
		if id == "" || title == "" || strings.TrimSpace(l.ApplyLink) == "" {
			continue
		}
		if !WithinWindow(l.PostedAt, c.cfg.MaxAge) {
			continue
		}
		out = append(out, domain.Job{
			ID:          id,
			Title:       title,
			Company:     util.CleanText(l.Employer),
			Location:    joinLocation(l.City, l.State, l.Country),
			Description: util.StripHTML(l.Description),
			URL:         l.ApplyLink,
			Source:      "jsearch",
			PostedAgo:   util.CleanText(l.PostedAt),
		})
	}
	return out, nil
}

var relAge = regexp.MustCompile(`^(\d+)\s+(minute|hour|day|week|month)s?\s+ago$`)

// WithinWindow decides whether a relative-age phrase falls inside max.
// "1 day" counts as within a 24h window; "2 days" and beyond do not.
// Phrases we can't parse are kept: this feed is best effort and dropping
// silently would hide real postings.
func WithinWindow(phrase string, max time.Duration) bool {
	p := strings.ToLower(util.CleanText(phrase))
	switch p {
	case "", "just now", "today", "just posted":
		return true
	case "yesterday":
		return 24*time.Hour <= max
	}

	m := relAge.FindStringSubmatch(p)
	if m == nil {
		return true
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return true
	}
	switch m[2] {
	case "minute":
		return time.Duration(n)*time.Minute <= max
	case "hour":
		return time.Duration(n)*time.Hour <= max
	case "day":
		// inclusive: "1 day ago" sits exactly on a 24h window and is kept
		return time.Duration(n)*24*time.Hour <= max
	case "week":
		return time.Duration(n)*7*24*time.Hour <= max
	default: // month
		return false
	}
}

func joinLocation(parts ...string) string {
	var out []string
	for _, p := range parts {
		p = util.CleanText(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
