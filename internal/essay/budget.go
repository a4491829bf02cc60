package essay

import (
	"math"
	"regexp"
	"strconv"
)

// Word limit bounds for a requested essay length.
const (
	MinWordLimit     = 100
	MaxWordLimit     = 1000
	DefaultWordLimit = 250
)

// topicMaxChars hard-truncates the topic fed into section prompts. This
// protects prompt size at the cost of possibly losing late-arriving
// facts in very long inputs.
const topicMaxChars = 300

// Section share fractions. They sum to exactly 1.0; per-share rounding
// may still drift the realized total by a word or two, which is
// accepted rather than corrected.
const (
	introFraction     = 0.20
	challengeFraction = 0.25
	actionFraction    = 0.25
	growthFraction    = 0.15
	goalFraction      = 0.15
)

// WordBudget is the per-section word allotment derived from a total
// requested word limit.
type WordBudget struct {
	Intro     int
	Challenge int
	Action    int
	Growth    int
	Goal      int
}

// NewWordBudget distributes total across the five sections using the
// fixed fractions, rounding each share independently.
func NewWordBudget(total int) WordBudget {
	share := func(f float64) int {
		return int(math.Round(float64(total) * f))
	}
	return WordBudget{
		Intro:     share(introFraction),
		Challenge: share(challengeFraction),
		Action:    share(actionFraction),
		Growth:    share(growthFraction),
		Goal:      share(goalFraction),
	}
}

var wordLimitPattern = regexp.MustCompile(`(?i)(\d+)\s*words?`)

// ParseWordLimit looks for a "<number> word(s)" request in the input and
// clamps it to [MinWordLimit, MaxWordLimit]. Absent a match, the default
// applies.
func ParseWordLimit(input string) int {
	m := wordLimitPattern.FindStringSubmatch(input)
	if m == nil {
		return DefaultWordLimit
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultWordLimit
	}
	if n < MinWordLimit {
		return MinWordLimit
	}
	if n > MaxWordLimit {
		return MaxWordLimit
	}
	return n
}

// Topic returns the first topicMaxChars characters of the combined
// input.
func Topic(combinedInput string) string {
	runes := []rune(combinedInput)
	if len(runes) <= topicMaxChars {
		return combinedInput
	}
	return string(runes[:topicMaxChars])
}
