// Package intent classifies inbound messages as essay requests or chat.
package intent

import "strings"

type Intent string

const (
	Chat  Intent = "CHAT"
	Essay Intent = "ESSAY"
)

// greetings that never indicate essay work.
var greetings = map[string]bool{
	"hi":    true,
	"hello": true,
	"hey":   true,
}

// Detect maps normalized input text to a coarse intent. Empty input and
// bare greetings are CHAT; everything else is ESSAY. This is a heuristic
// placeholder and the single extension point for a real classifier.
func Detect(text string) Intent {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return Chat
	}
	if greetings[t] {
		return Chat
	}
	return Essay
}
