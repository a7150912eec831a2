package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults and returns a normalized copy plus
// everything wrong or suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	// ---- defaults ----

	if out.Polling.IntervalMinutes == 0 {
		out.Polling.IntervalMinutes = 5
	}
	if out.Polling.FetchTimeoutSeconds == 0 {
		out.Polling.FetchTimeoutSeconds = 30
	}
	if out.Sources.Adzuna.Country == "" {
		out.Sources.Adzuna.Country = "us"
	}
	if out.Sources.Adzuna.ResultsPerPage == 0 {
		out.Sources.Adzuna.ResultsPerPage = 20
	}
	if out.Sources.Adzuna.WindowHours == 0 {
		out.Sources.Adzuna.WindowHours = 2
	}
	if out.Sources.JSearch.Country == "" {
		out.Sources.JSearch.Country = "us"
	}
	if out.Sources.JSearch.MaxAgeHours == 0 {
		out.Sources.JSearch.MaxAgeHours = 24
	}
	if out.Store.Backend == "" {
		out.Store.Backend = "file"
	}
	if out.Store.Path == "" {
		switch out.Store.Backend {
		case "sqlite":
			out.Store.Path = "posted_jobs.db"
		default:
			out.Store.Path = "posted_jobs.txt"
		}
	}
	if out.Filters.EmptyDescriptionSignal == "" {
		out.Filters.EmptyDescriptionSignal = "possible"
	}
	out.Filters.EmptyDescriptionSignal = strings.ToLower(strings.TrimSpace(out.Filters.EmptyDescriptionSignal))

	// ---- validation rules ----

	if out.Polling.IntervalMinutes < 0 {
		res.addErr("polling.interval_minutes must be > 0")
	} else if out.Polling.IntervalMinutes == 1 {
		res.addWarn("polling.interval_minutes=1 is aggressive and may hit upstream rate limits")
	}

	if out.Polling.FetchTimeoutSeconds < 0 {
		res.addErr("polling.fetch_timeout_seconds must be > 0")
	}

	switch out.Store.Backend {
	case "file", "sqlite":
	default:
		res.addErr("store.backend must be \"file\" or \"sqlite\", got %q", out.Store.Backend)
	}

	switch out.Filters.EmptyDescriptionSignal {
	case "possible", "not_mentioned":
	default:
		res.addErr("filters.empty_description_signal must be \"possible\" or \"not_mentioned\", got %q", out.Filters.EmptyDescriptionSignal)
	}

	if !out.Sources.Adzuna.Enabled && !out.Sources.JSearch.Enabled && !out.Sources.CompanySites.Enabled {
		res.addErr("no sources enabled: enable adzuna, jsearch, or company_sites")
	}

	if out.Sources.Adzuna.Enabled && strings.TrimSpace(out.Sources.Adzuna.What) == "" {
		res.addErr("sources.adzuna.what is required when adzuna is enabled")
	}
	if out.Sources.JSearch.Enabled && strings.TrimSpace(out.Sources.JSearch.Query) == "" {
		res.addErr("sources.jsearch.query is required when jsearch is enabled")
	}
	if out.Sources.CompanySites.Enabled {
		if strings.TrimSpace(out.Sources.CompanySites.CSVPath) == "" {
			res.addErr("sources.company_sites.csv_path is required when company_sites is enabled")
		}
		if strings.TrimSpace(out.Sources.CompanySites.Role) == "" {
			res.addErr("sources.company_sites.role is required when company_sites is enabled")
		}
	}

	if out.Sources.Adzuna.Enabled && out.Sources.Adzuna.WindowHours > 48 {
		res.addWarn("sources.adzuna.window_hours=%d is wide; expect a large first burst of messages", out.Sources.Adzuna.WindowHours)
	}

	return out, res
}

// ValidateCredentials cross-checks credentials against which sources are
// enabled. Any error here is fatal at startup: the process must never enter
// the scheduling loop half-configured.
func ValidateCredentials(cfg Config, creds Credentials) error {
	var missing []string

	if strings.TrimSpace(creds.BotToken) == "" {
		missing = append(missing, EnvBotToken)
	}
	if creds.ChatID == 0 {
		missing = append(missing, EnvChatID)
	}
	if cfg.Sources.Adzuna.Enabled {
		if strings.TrimSpace(creds.AdzunaAppID) == "" {
			missing = append(missing, EnvAdzunaAppID)
		}
		if strings.TrimSpace(creds.AdzunaAppKey) == "" {
			missing = append(missing, EnvAdzunaAppKey)
		}
	}
	if (cfg.Sources.JSearch.Enabled || cfg.Sources.CompanySites.Enabled) && strings.TrimSpace(creds.RapidAPIKey) == "" {
		missing = append(missing, EnvRapidAPIKey)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}
