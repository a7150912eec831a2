// Package adzuna fetches recent listings from the Adzuna job-search API.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobwatch-bot/internal/domain"
	"jobwatch-bot/internal/source/util"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api"

type Config struct {
	AppID          string
	AppKey         string
	Country        string // api path segment: us, gb, ...
	What           string
	Where          string
	ResultsPerPage int
	Window         time.Duration // keep listings created within this window
	BaseURL        string        // override for tests
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
	now     func() time.Time
}

func New(cfg Config, limiter *util.HostLimiter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
		now:     time.Now,
	}
}

func (c *Client) Name() string { return "adzuna" }

// Response shape of GET /jobs/<country>/search/1; only the fields we use.
type searchResponse struct {
	Results []listing `json:"results"`
}

// flexID tolerates the id arriving as either a JSON string or a bare number,
// which varies by market.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "null" {
		s = ""
	}
	*f = flexID(s)
	return nil
}

type listing struct {
	ID          flexID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Created     string `json:"created"` // RFC3339
	RedirectURL string `json:"redirect_url"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

func (c *Client) Fetch(ctx context.Context) ([]domain.Job, error) {
	q := url.Values{}
	q.Set("app_id", c.cfg.AppID)
	q.Set("app_key", c.cfg.AppKey)
	q.Set("what", c.cfg.What)
	q.Set("where", c.cfg.Where)
	q.Set("results_per_page", strconv.Itoa(c.cfg.ResultsPerPage))
	q.Set("sort_by", "date")

	u := fmt.Sprintf("%s/jobs/%s/search/1?%s", c.cfg.BaseURL, url.PathEscape(c.cfg.Country), q.Encode())

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "jobwatch/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("adzuna status %d", res.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("adzuna decode: %w", err)
	}

	cutoff := c.now().UTC().Add(-c.cfg.Window)

	out := make([]domain.Job, 0, len(sr.Results))
	for _, l := range sr.Results {
		id := strings.TrimSpace(string(l.ID))
		title := util.CleanText(l.Title)
		if id == "" || title == "" || strings.TrimSpace(l.RedirectURL) == "" {
			continue
		}
		created, err := parseCreated(l.Created)
		if err != nil {
			continue // no usable timestamp: drop the single listing
		}
		if created.Before(cutoff) {
			continue // exactly-at-cutoff is kept
		}
		postedAt := created
		out = append(out, domain.Job{
			ID:          id,
			Title:       title,
			Company:     util.CleanText(l.Company.DisplayName),
			Location:    util.CleanText(l.Location.DisplayName),
			Description: util.StripHTML(l.Description),
			URL:         l.RedirectURL,
			Source:      "adzuna",
			PostedAt:    &postedAt,
		})
	}
	return out, nil
}

// Adzuna emits "2026-08-26T09:15:00Z", but some markets drop the zone.
func parseCreated(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty created")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(s, "Z"))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
