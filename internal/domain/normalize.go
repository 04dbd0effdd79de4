package domain

import (
	"strings"
)

// NormalizeText produces the lookup key shared by the local lexicon and the
// external providers:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses inner whitespace runs into one space
//
// Umlauts, ß, hyphens and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
