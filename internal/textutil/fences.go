package textutil

import "strings"

// StripCodeFences removes markdown code-fence wrapping that language
// models habitually add around JSON output.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
