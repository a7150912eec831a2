package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter_BucketsAreIndependentPerHost(t *testing.T) {
	hl := NewHostLimiter(0.1, 1) // one immediate request per host, then a long wait

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, hl.WaitURL(ctx, "https://api.adzuna.com/v1/jobs"))
	require.NoError(t, hl.WaitURL(ctx, "https://jsearch.p.rapidapi.com/search"))

	assert.Less(t, time.Since(start), 500*time.Millisecond,
		"different hosts must not contend for the same bucket")
}

func TestHostLimiter_SameHostContends(t *testing.T) {
	hl := NewHostLimiter(20, 1)

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, hl.WaitURL(ctx, "https://api.adzuna.com/v1/jobs/us/search/1"))
	require.NoError(t, hl.WaitURL(ctx, "https://api.adzuna.com/v1/jobs/us/search/2"))

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHostLimiter_UnparseableURLsShareTheCatchAllBucket(t *testing.T) {
	hl := NewHostLimiter(20, 1)

	ctx := context.Background()
	start := time.Now()
	require.NoError(t, hl.WaitURL(ctx, "::not a url::"))
	require.NoError(t, hl.WaitURL(ctx, "also-hostless"))

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
