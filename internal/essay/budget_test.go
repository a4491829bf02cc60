package essay

import (
	"strings"
	"testing"
)

func TestTopic_Truncation(t *testing.T) {
	short := "write about resilience"
	if got := Topic(short); got != short {
		t.Errorf("short input must pass through, got %q", got)
	}

	long := strings.Repeat("x", 450)
	got := Topic(long)
	if len(got) != 300 {
		t.Errorf("expected 300 chars, got %d", len(got))
	}
	if got != long[:300] {
		t.Errorf("expected exact prefix")
	}
}

func TestParseWordLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"write about resilience in 150 words", 150},
		{"give me 500 WORDS on leadership", 500},
		{"just 1 word", 100},
		{"50 words please", 100},
		{"5000 words essay", 1000},
		{"write about my volunteer work", 250},
		{"", 250},
	}
	for _, c := range cases {
		if got := ParseWordLimit(c.in); got != c.want {
			t.Errorf("ParseWordLimit(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNewWordBudget_Shares(t *testing.T) {
	b := NewWordBudget(250)
	if b.Intro != 50 || b.Challenge != 63 || b.Action != 63 || b.Growth != 38 || b.Goal != 38 {
		t.Errorf("unexpected budget for 250: %+v", b)
	}

	for _, total := range []int{100, 250, 333, 1000} {
		b := NewWordBudget(total)
		for _, share := range []int{b.Intro, b.Challenge, b.Action, b.Growth, b.Goal} {
			if share < 0 {
				t.Errorf("negative share for total %d: %+v", total, b)
			}
		}
		// Rounding drift stays within a couple of words of the total.
		sum := b.Intro + b.Challenge + b.Action + b.Growth + b.Goal
		if sum < total-3 || sum > total+3 {
			t.Errorf("total %d: shares sum to %d", total, sum)
		}
	}
}

func TestEnforceWordLimit_Idempotent(t *testing.T) {
	text := "one two three four five"
	if got := EnforceWordLimit(text, 10); got != text {
		t.Errorf("under-limit text must be unchanged, got %q", got)
	}
	if got := EnforceWordLimit(text, 5); got != text {
		t.Errorf("exact-limit text must be unchanged, got %q", got)
	}
}

func TestEnforceWordLimit_Truncates(t *testing.T) {
	text := "one two three four five six seven"
	got := EnforceWordLimit(text, 3)
	if got != "one two three." {
		t.Errorf("expected %q, got %q", "one two three.", got)
	}
	if len(strings.Fields(got)) != 3 {
		t.Errorf("expected exactly 3 words")
	}
}

func TestEnforceWordLimit_StripsTrailingPunctuation(t *testing.T) {
	got := EnforceWordLimit("grew. through, hardship; and effort", 3)
	if got != "grew. through, hardship." {
		t.Errorf("expected trailing punctuation replaced by single period, got %q", got)
	}
}
