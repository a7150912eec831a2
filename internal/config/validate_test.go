package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() Config {
	var cfg Config
	cfg.Sources.Adzuna.Enabled = true
	cfg.Sources.Adzuna.What = "data analyst"
	return cfg
}

func TestNormalizeAndValidate_Defaults(t *testing.T) {
	cfg, res := NormalizeAndValidate(baseConfig())

	require.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, 5, cfg.Polling.IntervalMinutes)
	assert.Equal(t, 30, cfg.Polling.FetchTimeoutSeconds)
	assert.Equal(t, "us", cfg.Sources.Adzuna.Country)
	assert.Equal(t, 2, cfg.Sources.Adzuna.WindowHours)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "posted_jobs.txt", cfg.Store.Path)
	assert.Equal(t, "possible", cfg.Filters.EmptyDescriptionSignal)
}

func TestNormalizeAndValidate_Rejections(t *testing.T) {
	var cfg Config // nothing enabled
	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())

	cfg = baseConfig()
	cfg.Store.Backend = "redis"
	_, res = NormalizeAndValidate(cfg)
	assert.False(t, res.OK())

	cfg = baseConfig()
	cfg.Filters.EmptyDescriptionSignal = "maybe"
	_, res = NormalizeAndValidate(cfg)
	assert.False(t, res.OK())

	cfg = baseConfig()
	cfg.Sources.Adzuna.What = ""
	_, res = NormalizeAndValidate(cfg)
	assert.False(t, res.OK())

	cfg = baseConfig()
	cfg.Sources.CompanySites.Enabled = true // no csv_path, no role
	_, res = NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Len(t, res.Errors, 2)
}

func TestValidateCredentials(t *testing.T) {
	cfg, _ := NormalizeAndValidate(baseConfig())

	creds := Credentials{
		BotToken:     "t",
		ChatID:       -100123,
		AdzunaAppID:  "id",
		AdzunaAppKey: "key",
	}
	assert.NoError(t, ValidateCredentials(cfg, creds))

	missing := creds
	missing.BotToken = ""
	err := ValidateCredentials(cfg, missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvBotToken)

	missing = creds
	missing.AdzunaAppKey = ""
	assert.Error(t, ValidateCredentials(cfg, missing))

	// jsearch off: rapidapi key not required
	assert.NoError(t, ValidateCredentials(cfg, creds))

	cfg.Sources.JSearch.Enabled = true
	err = ValidateCredentials(cfg, creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRapidAPIKey)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
polling:
  interval_minutes: 10
sources:
  jsearch:
    enabled: true
    query: "data analyst in United States"
filters:
  require_sponsor_signal: true
  empty_description_signal: not_mentioned
store:
  backend: sqlite
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	cfg, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), "errors: %v", res.Errors)

	assert.Equal(t, 10, cfg.Polling.IntervalMinutes)
	assert.True(t, cfg.Sources.JSearch.Enabled)
	assert.True(t, cfg.Filters.RequireSponsorSignal)
	assert.Equal(t, "not_mentioned", cfg.Filters.EmptyDescriptionSignal)
	assert.Equal(t, "posted_jobs.db", cfg.Store.Path, "sqlite default path")
}

func TestEnsureUserConfig_SeedsFromDefault(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	require.NoError(t, os.WriteFile(def, []byte("polling:\n  interval_minutes: 7\n"), 0o644))

	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	path, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Polling.IntervalMinutes)

	// second call leaves the user copy alone
	require.NoError(t, os.WriteFile(path, []byte("polling:\n  interval_minutes: 9\n"), 0o644))
	path2, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	cfg, err = Load(path2)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Polling.IntervalMinutes)
}
