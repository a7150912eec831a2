package enrich

import (
	"strings"
	"testing"

	"jobwatch-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_FullScenario(t *testing.T) {
	j := domain.Job{
		ID:          "a1",
		Title:       "Data Analyst",
		Description: "5+ years required, $90k-$120k, H1B sponsorship available",
	}

	out, keep := Apply(j, Policy{RequireSponsorSignal: true})

	require.True(t, keep)
	assert.Equal(t, domain.SignalYes, out.Visa)
	assert.Equal(t, domain.SignalNotMentioned, out.OPT)
	assert.Equal(t, domain.EmploymentFullTime, out.Employment)
	assert.Contains(t, out.Experience, "5+ years")
	assert.Equal(t, "$90k-$120k", out.Salary)
}

func TestApply_NeverTouchesIdentityFields(t *testing.T) {
	j := domain.Job{
		ID:          "a1",
		Title:       "Data Analyst",
		Company:     "Acme",
		URL:         "https://example.com/a1",
		Description: "contract role, visa sponsorship",
	}

	out, _ := Apply(j, Policy{})

	assert.Equal(t, j.ID, out.ID)
	assert.Equal(t, j.Title, out.Title)
	assert.Equal(t, j.Company, out.Company)
	assert.Equal(t, j.URL, out.URL)
	assert.Equal(t, j.Description, out.Description)
}

func TestApply_HardPreFilter(t *testing.T) {
	noSignal := domain.Job{ID: "x", Description: "great analytics role, python and sql"}

	_, keep := Apply(noSignal, Policy{RequireSponsorSignal: true})
	assert.False(t, keep, "no sponsor mention must be rejected when the gate is on")

	_, keep = Apply(noSignal, Policy{RequireSponsorSignal: false})
	assert.True(t, keep, "informational mode keeps everything")

	optOnly := domain.Job{ID: "y", Description: "stem opt candidates welcome"}
	_, keep = Apply(optOnly, Policy{RequireSponsorSignal: true})
	assert.True(t, keep, "either signal satisfies the gate")
}

func TestApply_EmptyDescriptionDefaults(t *testing.T) {
	j := domain.Job{ID: "x"}

	out, keep := Apply(j, Policy{EmptyDescriptionSignal: domain.SignalPossible})
	require.True(t, keep)
	assert.Equal(t, domain.SignalPossible, out.Visa)
	assert.Equal(t, domain.SignalPossible, out.OPT)
	assert.Equal(t, domain.EmploymentUnknown, out.Employment)

	out, _ = Apply(j, Policy{EmptyDescriptionSignal: domain.SignalNotMentioned})
	assert.Equal(t, domain.SignalNotMentioned, out.Visa)

	// zero-value policy still yields a deterministic default
	out, _ = Apply(j, Policy{})
	assert.Equal(t, domain.SignalPossible, out.Visa)
}

func TestApply_ContractKeywords(t *testing.T) {
	for _, desc := range []string{
		"6 month contract with visa sponsorship",
		"c2c only",
		"1099 position",
		"looking for a contractor",
	} {
		out, _ := Apply(domain.Job{ID: "x", Description: desc}, Policy{})
		assert.Equal(t, domain.EmploymentContract, out.Employment, desc)
	}

	out, _ := Apply(domain.Job{ID: "x", Description: "permanent full time role"}, Policy{})
	assert.Equal(t, domain.EmploymentFullTime, out.Employment)
}

func TestExperience(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"3-5 years of experience", "3-5 years"},
		{"3 to 5 years experience", "3-5 years"},
		{"at least 4 years in analytics", "4+ years"},
		{"minimum of 7 years", "7+ years"},
		{"5+ years required", "5+ years"},
		{"2 years experience", "2 years"},
		{"senior data analyst wanted", "5+ years (estimated)"},
		{"entry level position", "0-2 years (estimated)"},
		{"junior analyst", "0-2 years (estimated)"},
		{"no numbers here at all", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Experience(c.desc), c.desc)
	}
}

func TestSalary(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"pays $90k-$120k plus bonus", "$90k-$120k"},
		{"pays $90k - $120k", "$90k-$120k"},
		{"pays $90K-$120K doe", "$90k-$120k"},
		{"base salary $85000", "$85000"},
		{"competitive compensation", ""},
	}
	for _, c := range cases {
		// ranges keep whatever casing the posting used; compare folded
		assert.Equal(t, c.want, strings.ToLower(Salary(c.desc)), c.desc)
	}
}
