// Package source defines the contract every upstream adapter implements.
package source

import (
	"context"

	"jobwatch-bot/internal/domain"
)

// Fetcher pulls one page of listings from an upstream and maps them to
// normalized jobs. Implementations skip malformed listings instead of
// failing, and apply their own recency rule before returning.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Job, error)
}
