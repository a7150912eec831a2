// Package enrich derives visa/OPT signals, employment type, and rough
// experience/salary estimates from a posting's free text. Everything here is
// a pure function over the record's text fields: no I/O, identity fields are
// never touched. Estimates are best effort: plausible or absent, never a
// guarantee.
package enrich

import (
	"fmt"
	"regexp"
	"strings"

	"jobwatch-bot/internal/domain"
)

var (
	visaKeywords     = []string{"h1b", "visa sponsorship", "work visa", "sponsor"}
	optKeywords      = []string{"opt", "cpt", "stem opt", "f1"}
	contractKeywords = []string{"contract", "c2c", "1099", "contractor"}
)

// Policy is the per-deployment filtering convention. Two behaviors exist in
// the wild: treat sponsorship mentions as a hard gate, or as pure
// information. Neither is "correct", so both are supported.
type Policy struct {
	// RequireSponsorSignal rejects postings whose text mentions neither
	// visa sponsorship nor OPT/CPT.
	RequireSponsorSignal bool
	// EmptyDescriptionSignal is assigned to both signals when a posting has
	// no description to inspect.
	EmptyDescriptionSignal domain.Signal
}

// Apply enriches j in place and reports whether it survives the policy's
// pre-filter.
func Apply(j domain.Job, p Policy) (domain.Job, bool) {
	desc := strings.ToLower(j.Description)

	if desc == "" {
		def := p.EmptyDescriptionSignal
		if def == "" {
			def = domain.SignalPossible
		}
		j.Visa, j.OPT = def, def
		j.Employment = domain.EmploymentUnknown
	} else {
		j.Visa = signalFor(desc, visaKeywords)
		j.OPT = signalFor(desc, optKeywords)
		if containsAny(desc, contractKeywords) {
			j.Employment = domain.EmploymentContract
		} else {
			j.Employment = domain.EmploymentFullTime
		}
		j.Experience = Experience(desc)
		j.Salary = Salary(desc)
	}

	if p.RequireSponsorSignal && j.Visa != domain.SignalYes && j.OPT != domain.SignalYes {
		return j, false
	}
	return j, true
}

func signalFor(desc string, keywords []string) domain.Signal {
	if containsAny(desc, keywords) {
		return domain.SignalYes
	}
	return domain.SignalNotMentioned
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

var (
	reExpRange   = regexp.MustCompile(`(\d{1,2})\s*(?:-|–|to)\s*(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)
	reExpAtLeast = regexp.MustCompile(`(?:at least|minimum(?: of)?)\s+(\d{1,2})\s*(?:years?|yrs?)`)
	reExpSingle  = regexp.MustCompile(`(\d{1,2})\s*(\+)?\s*(?:years?|yrs?)`)
)

// Experience scans lower-cased text for a years-of-experience mention.
// Pattern order matters: a range beats a minimum beats a bare number, and
// keyword guesses only kick in when no number appears at all. Returns ""
// when nothing matches.
func Experience(desc string) string {
	if m := reExpRange.FindStringSubmatch(desc); m != nil {
		return fmt.Sprintf("%s-%s years", m[1], m[2])
	}
	if m := reExpAtLeast.FindStringSubmatch(desc); m != nil {
		return m[1] + "+ years"
	}
	if m := reExpSingle.FindStringSubmatch(desc); m != nil {
		if m[2] == "+" {
			return m[1] + "+ years"
		}
		return m[1] + " years"
	}
	if strings.Contains(desc, "senior") {
		return "5+ years (estimated)"
	}
	if strings.Contains(desc, "junior") || strings.Contains(desc, "entry level") {
		return "0-2 years (estimated)"
	}
	return ""
}

var (
	reSalRange  = regexp.MustCompile(`(?i)\$\d{1,3}k\s*(?:-|–)\s*\$?\d{1,3}k`)
	reSalAmount = regexp.MustCompile(`\$\d{4,6}`)
)

// Salary pulls a "$90k-$120k" style range, or failing that a bare dollar
// figure, out of the text. Returns "" when nothing matches.
func Salary(desc string) string {
	if m := reSalRange.FindString(desc); m != "" {
		return strings.Join(strings.Fields(m), "")
	}
	return reSalAmount.FindString(desc)
}
