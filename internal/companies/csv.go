// Package companies loads the company→sites directory used by the
// per-company-site source. The file is a two-column CSV: company name and a
// pipe-delimited list of site domains.
package companies

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

type Company struct {
	Name  string
	Sites []string
}

// LoadCSV parses the directory file. Rows without a usable site list are
// dropped (that company is simply not queried); a header row is tolerated.
func LoadCSV(path string) ([]Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open companies csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows vary; we validate ourselves
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read companies csv: %w", err)
	}

	var out []Company
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if i == 0 && strings.EqualFold(name, "company") {
			continue // header
		}
		sites := splitSites(row[1])
		if len(sites) == 0 {
			continue
		}
		out = append(out, Company{Name: name, Sites: sites})
	}
	return out, nil
}

func splitSites(cell string) []string {
	seen := map[string]bool{}
	var out []string
	for _, raw := range strings.Split(cell, "|") {
		s := normalizeSite(raw)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// normalizeSite strips protocol and path so the value works as a site-scope
// query filter.
func normalizeSite(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
