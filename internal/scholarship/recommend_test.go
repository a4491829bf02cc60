package scholarship

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/llm"
	"scholar-ai/internal/profile"
)

type fakeCompleter struct {
	reply    string
	err      error
	calls    int
	lastMsgs []llm.Message
}

func (f *fakeCompleter) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.calls++
	f.lastMsgs = messages
	return f.reply, f.err
}

func strPtr(s string) *string { return &s }

func TestNormalizeLevel(t *testing.T) {
	cases := []struct {
		education string
		want      string
	}{
		{"Master of Science", "university"},
		{"MSc Computer Science", "university"},
		{"PhD candidate", "university"},
		{"Doctoral program", "university"},
		{"High school senior", "college"},
		{"Bachelor's degree", "college"},
		{"", "college"},
	}
	for _, c := range cases {
		if got := NormalizeLevel(c.education); got != c.want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", c.education, got, c.want)
		}
	}
}

func TestValidForLevel(t *testing.T) {
	cases := []struct {
		title string
		level string
		want  bool
	}{
		{"No Essay Scholarship", "university", false},
		{"Monthly Sweepstakes Award", "university", false},
		{"Invite-Only Grant", "university", false},
		{"No Essay Scholarship", "college", true},
		{"STEM Research Fellowship", "university", true},
	}
	for _, c := range cases {
		if got := validForLevel(Scholarship{Title: c.title}, c.level); got != c.want {
			t.Errorf("validForLevel(%q, %q) = %v, want %v", c.title, c.level, got, c.want)
		}
	}
}

func TestRecommendRestoresAmounts(t *testing.T) {
	completer := &fakeCompleter{reply: "```json\n[{\"title\":\"STEM Scholarship\",\"amount\":\"5000 USD\"}]\n```"}
	r := NewRecommender(completer)

	source := []Scholarship{
		{Title: "STEM Scholarship", Amount: strPtr("$5,000")},
		{Title: "Arts Grant", Amount: nil},
	}
	user := profile.User{Education: "Bachelor's", Profile: profile.Profile{Major: "CS"}}

	picks, err := r.Recommend(context.Background(), user, source)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(picks) != 1 {
		t.Fatalf("expected 1 pick, got %d", len(picks))
	}
	if picks[0].Amount == nil || *picks[0].Amount != "$5,000" {
		t.Errorf("amount not restored from source list: %v", picks[0].Amount)
	}
	if completer.calls != 1 {
		t.Errorf("expected exactly 1 completion call, got %d", completer.calls)
	}
}

func TestRecommendUnknownTitleGetsNilAmount(t *testing.T) {
	completer := &fakeCompleter{reply: `[{"title":"Invented Scholarship","amount":"$999"}]`}
	r := NewRecommender(completer)

	source := []Scholarship{{Title: "Real Scholarship", Amount: strPtr("$1,000")}}
	picks, err := r.Recommend(context.Background(), profile.User{}, source)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if picks[0].Amount != nil {
		t.Errorf("expected nil amount for title absent from source, got %q", *picks[0].Amount)
	}
}

func TestRecommendInvalidJSONIsFormatError(t *testing.T) {
	completer := &fakeCompleter{reply: "sorry, I cannot help with that"}
	r := NewRecommender(completer)

	_, err := r.Recommend(context.Background(), profile.User{}, []Scholarship{{Title: "A Scholarship"}})
	if !errors.Is(err, apperr.ErrFormat) {
		t.Errorf("expected ErrFormat for non-JSON model output, got %v", err)
	}
}

func TestRecommendEmptyAfterFilterIsNotFound(t *testing.T) {
	r := NewRecommender(&fakeCompleter{})
	user := profile.User{Education: "PhD"}
	source := []Scholarship{{Title: "No Essay Scholarship"}}

	_, err := r.Recommend(context.Background(), user, source)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound when every listing is filtered out, got %v", err)
	}
}

func TestRecommendPromptCarriesLevelAndListing(t *testing.T) {
	completer := &fakeCompleter{reply: `[]`}
	r := NewRecommender(completer)

	user := profile.User{Education: "MSc", Profile: profile.Profile{Major: "Physics"}}
	source := []Scholarship{{Title: "Graduate Research Fellowship"}}

	if _, err := r.Recommend(context.Background(), user, source); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	var all strings.Builder
	for _, m := range completer.lastMsgs {
		all.WriteString(m.Content)
		all.WriteString("\n")
	}
	joined := all.String()
	if !strings.Contains(joined, "university") {
		t.Error("prompt missing normalized education level")
	}
	if !strings.Contains(joined, "Graduate Research Fellowship") {
		t.Error("prompt missing scholarship listing")
	}
	if !strings.Contains(joined, "Physics") {
		t.Error("prompt missing user major")
	}
	if !strings.Contains(joined, "EXACTLY 10") {
		t.Error("prompt missing the ten-item contract")
	}
}
