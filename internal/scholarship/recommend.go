package scholarship

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/llm"
	"scholar-ai/internal/profile"
	"scholar-ai/internal/textutil"
)

// Completer sends one message sequence to the generative model.
type Completer interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Recommendation is one entry of the agent's strict output contract.
type Recommendation struct {
	ScholarshipID string  `json:"scholarshipId"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	DetailURL     string  `json:"detailUrl"`
	Subject       string  `json:"subject"`
	Provider      string  `json:"provider"`
	Deadline      *string `json:"deadline"`
	Amount        *string `json:"amount"`
	Description   string  `json:"description"`
}

// Recommender picks scholarships for a user with one completion call.
type Recommender struct {
	completer Completer
}

func NewRecommender(completer Completer) *Recommender {
	return &Recommender{completer: completer}
}

// NormalizeLevel maps a free-text education field onto the two
// scholarship levels. Unknown values fall back to college, the safe
// default.
func NormalizeLevel(education string) string {
	e := strings.ToLower(education)
	for _, kw := range []string{"master", "msc", "phd", "doctoral"} {
		if strings.Contains(e, kw) {
			return "university"
		}
	}
	return "college"
}

// validForLevel drops listings that are pointless for graduate-level
// applicants.
func validForLevel(s Scholarship, level string) bool {
	if level != "msc" && level != "phd" && level != "university" {
		return true
	}
	t := strings.ToLower(s.Title)
	return !strings.Contains(t, "no essay") &&
		!strings.Contains(t, "sweepstakes") &&
		!strings.Contains(t, "invite")
}

// Recommend asks the model for exactly ten picks from the provided list.
// The model output is parsed after code-fence stripping, then the
// original literal amount strings are re-injected by title because
// models are known to reformat currency strings.
func (r *Recommender) Recommend(ctx context.Context, user profile.User, scholarships []Scholarship) ([]Recommendation, error) {
	level := NormalizeLevel(user.Education)

	filtered := make([]Scholarship, 0, len(scholarships))
	for _, s := range scholarships {
		if validForLevel(s, level) {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no scholarships available for level %s", apperr.ErrNotFound, level)
	}

	req, err := recommendPrompt(user, level, filtered)
	if err != nil {
		return nil, err
	}

	raw, err := r.completer.Chat(ctx, req.Messages())
	if err != nil {
		return nil, err
	}

	var picks []Recommendation
	if err := json.Unmarshal([]byte(textutil.StripCodeFences(raw)), &picks); err != nil {
		return nil, fmt.Errorf("%w: recommendation output was not valid JSON: %v", apperr.ErrFormat, err)
	}

	return restoreAmounts(picks, filtered), nil
}

// recommendPrompt builds the strict-contract recommendation request.
func recommendPrompt(user profile.User, level string, filtered []Scholarship) (llm.PromptRequest, error) {
	listing, err := json.Marshal(filtered)
	if err != nil {
		return llm.PromptRequest{}, fmt.Errorf("%w: failed to encode scholarship list: %v", apperr.ErrFormat, err)
	}

	p := user.Profile
	facts := fmt.Sprintf(
		"USER PROFILE:\n- Education Level: %s\n- Major: %s\n- Career Goal: %s\n- Achievement: %s\n- Background: %s\n- Challenges: %s\n\nSCHOLARSHIPS (already filtered by level):\n%s",
		level, orNotSpecified(p.Major), orNotSpecified(p.CareerGoal), orNotSpecified(p.Achievement),
		orNotSpecified(p.Background), orNotSpecified(p.Challenges), string(listing),
	)

	return llm.PromptRequest{
		SystemInstruction: "You are an expert scholarship recommendation agent.",
		Constraints: []string{
			"Recommend EXACTLY 10 scholarships",
			"Choose ONLY from the provided list",
			"DO NOT invent type, deadline, or amount",
			"Reuse type, deadline, and amount EXACTLY as given",
			"DO NOT convert currency format",
			"If a value is null, keep it null",
			`Return a RAW JSON ARRAY of objects shaped as {"scholarshipId","title","type","detailUrl","subject","provider","deadline","amount","description"}`,
			"No markdown, no explanation text",
		},
		Facts: []string{facts},
	}, nil
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// restoreAmounts re-injects the original amount strings, matched by
// title. Titles absent from the source list get a null amount.
func restoreAmounts(picks []Recommendation, source []Scholarship) []Recommendation {
	amounts := make(map[string]*string, len(source))
	for _, s := range source {
		amounts[s.Title] = s.Amount
	}
	for i := range picks {
		picks[i].Amount = amounts[picks[i].Title]
	}
	return picks
}
