package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// StripHTML flattens a description that arrived as an HTML fragment into
// plain text. Plain strings pass through untouched apart from whitespace
// cleanup.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return CleanText(s)
	}
	// pad tags so adjacent elements don't fuse into one word
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(s, "<", " <")))
	if err != nil {
		return CleanText(s)
	}
	return CleanText(doc.Text())
}
