// Package textutil normalizes raw text from any input modality into a
// canonical single-line form before classification and prompting.
package textutil

import (
	"regexp"
	"strings"
)

var (
	multiNewline = regexp.MustCompile(`\n{2,}`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Clean collapses CRLF line endings, newline runs and whitespace runs
// into single spaces and trims the result. Total over arbitrary input.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = multiNewline.ReplaceAllString(s, "\n")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
