package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTelegram(base string) *Telegram {
	tg := NewTelegram("test-token", 42)
	tg.base = base
	tg.limiter = rate.NewLimiter(rate.Inf, 1)
	return tg
}

func TestDeliver_SendsOneMessage(t *testing.T) {
	var got []sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		var sr sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sr))
		got = append(got, sr)
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer srv.Close()

	tg := newTestTelegram(srv.URL)
	require.NoError(t, tg.Deliver(context.Background(), sampleJob()))

	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].ChatID)
	assert.Equal(t, "Markdown", got[0].ParseMode)
	assert.True(t, got[0].DisableWebPagePreview)
	assert.Contains(t, got[0].Text, "*Data Analyst*")
}

func TestDeliver_FallsBackToPlainTextOnParseError(t *testing.T) {
	var modes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sr sendRequest
		_ = json.NewDecoder(r.Body).Decode(&sr)
		modes = append(modes, sr.ParseMode)
		if sr.ParseMode != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(apiResponse{
				OK:          false,
				ErrorCode:   400,
				Description: "Bad Request: can't parse entities",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer srv.Close()

	tg := newTestTelegram(srv.URL)
	require.NoError(t, tg.Deliver(context.Background(), sampleJob()))

	assert.Equal(t, []string{"Markdown", ""}, modes)
}

func TestDeliver_FallbackTakesItsOwnRateSlot(t *testing.T) {
	var arrivals []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrivals = append(arrivals, time.Now())
		var sr sendRequest
		_ = json.NewDecoder(r.Body).Decode(&sr)
		if sr.ParseMode != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(apiResponse{
				OK:          false,
				ErrorCode:   400,
				Description: "Bad Request: can't parse entities",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
	}))
	defer srv.Close()

	tg := newTestTelegram(srv.URL)
	tg.limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 1)

	require.NoError(t, tg.Deliver(context.Background(), sampleJob()))

	require.Len(t, arrivals, 2)
	assert.GreaterOrEqual(t, arrivals[1].Sub(arrivals[0]), 90*time.Millisecond,
		"plain-text retry must wait out the limiter, not ride the first slot")
}

func TestDeliver_PropagatesOtherFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(apiResponse{
			OK:          false,
			ErrorCode:   429,
			Description: "Too Many Requests: retry after 30",
		})
	}))
	defer srv.Close()

	tg := newTestTelegram(srv.URL)
	err := tg.Deliver(context.Background(), sampleJob())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
