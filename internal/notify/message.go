package notify

import (
	"fmt"
	"strings"

	"jobwatch-bot/internal/domain"
)

// Telegram caps messages at 4096 chars; descriptions get a much tighter
// budget so the useful fields stay above the fold.
const maxDescriptionChars = 700

// RenderMessage builds the Markdown message for one posting. Only the
// rendered text is truncated; the record itself is left alone.
func RenderMessage(j domain.Job) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚨 *New Job Posted!* 🚨\n\n")
	fmt.Fprintf(&b, "*%s*\n", j.Title)
	fmt.Fprintf(&b, "🏢 %s\n", j.Company)
	fmt.Fprintf(&b, "📍 %s\n", j.Location)
	fmt.Fprintf(&b, "🎓 OPT: %s\n", j.OPT)
	fmt.Fprintf(&b, "🇺🇸 H1B: %s\n", j.Visa)
	fmt.Fprintf(&b, "💼 Type: %s\n", j.Employment)
	fmt.Fprintf(&b, "🧠 Experience: %s\n", orDefault(j.Experience, "Not specified"))
	fmt.Fprintf(&b, "💰 Salary: %s\n", orDefault(j.Salary, "Not disclosed"))

	if desc := strings.TrimSpace(j.Description); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", Truncate(desc, maxDescriptionChars))
	}
	fmt.Fprintf(&b, "\n🔗 [Apply](%s)", j.URL)

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Truncate cuts s to at most n runes, ending in an ellipsis when it had to
// cut anything.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
