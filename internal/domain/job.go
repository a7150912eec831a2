package domain

import "time"

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-Time"
	EmploymentContract EmploymentType = "Contract"
	EmploymentUnknown  EmploymentType = "Unknown"
)

// Signal grades how strongly a posting's text mentions a topic
// (visa sponsorship, OPT/CPT friendliness).
type Signal string

const (
	SignalYes          Signal = "Yes"
	SignalPossible     Signal = "Possible"
	SignalNotMentioned Signal = "Not mentioned"
)

// Job is one normalized posting flowing through a poll cycle. Adapters fill
// the identity/display fields; enrich fills the rest. The record lives for a
// single cycle: after a successful delivery only its ID survives, in the
// seen store.
type Job struct {
	ID          string // upstream posting id; the dedup key
	Title       string
	Company     string
	Location    string
	Description string // free text, filtering/enrichment only
	URL         string // apply/redirect link
	Source      string // adapter label: adzuna/jsearch/companysites
	PostedAt    *time.Time
	PostedAgo   string // raw relative phrase ("3 hours ago"), when the upstream has no timestamp

	// Derived fields, set by enrich only.
	Employment EmploymentType
	Visa       Signal
	OPT        Signal
	Experience string // "" = not specified
	Salary     string // "" = not disclosed
}
