package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Polling struct {
		IntervalMinutes     int `yaml:"interval_minutes"`
		FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	} `yaml:"polling"`

	Sources struct {
		Adzuna struct {
			Enabled        bool   `yaml:"enabled"`
			Country        string `yaml:"country"` // api path segment: us, gb, ...
			What           string `yaml:"what"`
			Where          string `yaml:"where"`
			ResultsPerPage int    `yaml:"results_per_page"`
			WindowHours    int    `yaml:"window_hours"`
		} `yaml:"adzuna"`

		JSearch struct {
			Enabled     bool   `yaml:"enabled"`
			Query       string `yaml:"query"`
			Country     string `yaml:"country"`
			MaxAgeHours int    `yaml:"max_age_hours"`
		} `yaml:"jsearch"`

		CompanySites struct {
			Enabled bool   `yaml:"enabled"`
			CSVPath string `yaml:"csv_path"` // company,sites directory
			Role    string `yaml:"role"`     // query term, e.g. "data analyst"
		} `yaml:"company_sites"`
	} `yaml:"sources"`

	Filters struct {
		// When true, a posting is dropped unless its text mentions visa
		// sponsorship or OPT/CPT. When false both signals are informational.
		RequireSponsorSignal bool `yaml:"require_sponsor_signal"`
		// Signal assigned when a posting has no description at all:
		// "possible" or "not_mentioned".
		EmptyDescriptionSignal string `yaml:"empty_description_signal"`
	} `yaml:"filters"`

	Store struct {
		Backend string `yaml:"backend"` // file | sqlite
		Path    string `yaml:"path"`
	} `yaml:"store"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
