package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"jobwatch-bot/internal/companies"
	"jobwatch-bot/internal/config"
	"jobwatch-bot/internal/domain"
	"jobwatch-bot/internal/enrich"
	"jobwatch-bot/internal/notify"
	"jobwatch-bot/internal/poll"
	"jobwatch-bot/internal/seen"
	"jobwatch-bot/internal/source"
	"jobwatch-bot/internal/source/adzuna"
	"jobwatch-bot/internal/source/companysites"
	"jobwatch-bot/internal/source/jsearch"
	"jobwatch-bot/internal/source/util"
)

func main() {
	dataDir := os.Getenv("JOBWATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	cfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	cfg, vres := config.NormalizeAndValidate(cfg)
	for _, w := range vres.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !vres.OK() {
		for _, e := range vres.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", cfgPath)
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}
	if err := config.ValidateCredentials(cfg, creds); err != nil {
		log.Fatalf("credentials: %v", err)
	}

	store, err := openStore(dataDir, cfg)
	if err != nil {
		log.Fatalf("seen store: %v", err)
	}
	defer store.Close()

	limiter := util.NewHostLimiter(1.0, 2)
	fetchers, err := buildFetchers(cfg, creds, limiter)
	if err != nil {
		log.Fatalf("sources: %v", err)
	}

	deps := poll.Deps{
		Fetchers:     fetchers,
		Store:        store,
		Notifier:     notify.NewTelegram(creds.BotToken, creds.ChatID),
		Policy:       policyFromConfig(cfg),
		FetchTimeout: time.Duration(cfg.Polling.FetchTimeoutSeconds) * time.Second,
	}

	interval := time.Duration(cfg.Polling.IntervalMinutes) * time.Minute
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[jobwatch] running: interval=%s sources=%d store=%s", interval, len(fetchers), cfg.Store.Backend)
	poll.NewPoller(interval, deps).Run(ctx)
	log.Printf("[jobwatch] shutting down")
}

func openStore(dataDir string, cfg config.Config) (seen.Store, error) {
	path := filepath.Join(dataDir, cfg.Store.Path)
	switch cfg.Store.Backend {
	case "sqlite":
		s, err := seen.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[seen] sqlite store %s (%d ids)", path, s.Len())
		return s, nil
	default:
		s, err := seen.NewFileStore(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[seen] file store %s (%d ids)", path, s.Len())
		return s, nil
	}
}

func buildFetchers(cfg config.Config, creds config.Credentials, limiter *util.HostLimiter) ([]source.Fetcher, error) {
	var fetchers []source.Fetcher

	if cfg.Sources.Adzuna.Enabled {
		fetchers = append(fetchers, adzuna.New(adzuna.Config{
			AppID:          creds.AdzunaAppID,
			AppKey:         creds.AdzunaAppKey,
			Country:        cfg.Sources.Adzuna.Country,
			What:           cfg.Sources.Adzuna.What,
			Where:          cfg.Sources.Adzuna.Where,
			ResultsPerPage: cfg.Sources.Adzuna.ResultsPerPage,
			Window:         time.Duration(cfg.Sources.Adzuna.WindowHours) * time.Hour,
		}, limiter))
	}

	if cfg.Sources.JSearch.Enabled {
		fetchers = append(fetchers, jsearch.New(jsearch.Config{
			APIKey:  creds.RapidAPIKey,
			Query:   cfg.Sources.JSearch.Query,
			Country: cfg.Sources.JSearch.Country,
			MaxAge:  time.Duration(cfg.Sources.JSearch.MaxAgeHours) * time.Hour,
		}, limiter))
	}

	if cfg.Sources.CompanySites.Enabled {
		dir, err := companies.LoadCSV(cfg.Sources.CompanySites.CSVPath)
		if err != nil {
			return nil, err
		}
		js := jsearch.New(jsearch.Config{
			APIKey:  creds.RapidAPIKey,
			Country: cfg.Sources.JSearch.Country,
			MaxAge:  time.Duration(cfg.Sources.JSearch.MaxAgeHours) * time.Hour,
		}, limiter)
		fetchers = append(fetchers, companysites.New(companysites.Config{
			Role:      cfg.Sources.CompanySites.Role,
			Companies: dir,
		}, js))
	}

	return fetchers, nil
}

func policyFromConfig(cfg config.Config) enrich.Policy {
	def := domain.SignalPossible
	if cfg.Filters.EmptyDescriptionSignal == "not_mentioned" {
		def = domain.SignalNotMentioned
	}
	return enrich.Policy{
		RequireSponsorSignal:   cfg.Filters.RequireSponsorSignal,
		EmptyDescriptionSignal: def,
	}
}
