package essay

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"scholar-ai/internal/llm"
	"scholar-ai/internal/profile"
)

// Completer sends one message sequence to the generative model.
type Completer interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// RuleSource retrieves writing rules for a natural-language query.
type RuleSource interface {
	Retrieve(ctx context.Context, query string, topK int) (string, error)
}

// ProfileSource fetches a user profile.
type ProfileSource interface {
	Fetch(ctx context.Context, userID string) (profile.Profile, error)
}

// Engine orchestrates essay generation: word-budget derivation,
// section-wise grounded generation, merging and limit enforcement.
type Engine struct {
	completer Completer
	rules     RuleSource
	profiles  ProfileSource
}

func NewEngine(completer Completer, rules RuleSource, profiles ProfileSource) *Engine {
	return &Engine{completer: completer, rules: rules, profiles: profiles}
}

// Generate produces a full essay for combinedInput, grounded in the
// user's profile and retrieved writing rules. The five sections are
// generated concurrently; a failure in any one fails the whole call so
// no partial essay escapes. Final concatenation order is fixed.
func (e *Engine) Generate(ctx context.Context, combinedInput, userID string) (string, error) {
	topic := Topic(combinedInput)
	wordLimit := ParseWordLimit(combinedInput)
	budget := NewWordBudget(wordLimit)

	prof, err := e.profiles.Fetch(ctx, userID)
	if err != nil {
		return "", err
	}
	profileText := profileBlock(prof)

	log.Printf("[Engine] generating essay for user %s (limit %d words)", userID, wordLimit)

	parts := make([]string, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range sections {
		g.Go(func() error {
			rules, err := e.rules.Retrieve(gctx, sec.ruleQuery, 0)
			if err != nil {
				return err
			}
			req := sectionPrompt(sec, topic, profileText, rules, sec.words(budget))
			text, err := e.completer.Chat(gctx, req.Messages())
			if err != nil {
				return err
			}
			parts[i] = strings.TrimSpace(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	merged := strings.Join(parts, " ")
	return EnforceWordLimit(merged, wordLimit), nil
}

// Update refines an existing essay with new input text. Incremental
// updates deliberately skip the section decomposition and the word-limit
// enforcement that full generation applies.
func (e *Engine) Update(ctx context.Context, existingEssay, newText string) (string, error) {
	return e.completer.Chat(ctx, updatePrompt(existingEssay, newText).Messages())
}

// UpdateFromDocument merges relevant facts from a reference document
// into an existing essay. Same length-discipline asymmetry as Update.
func (e *Engine) UpdateFromDocument(ctx context.Context, existingEssay, documentText string) (string, error) {
	return e.completer.Chat(ctx, documentPrompt(existingEssay, documentText).Messages())
}

// EnforceWordLimit hard-truncates text to at most limit words. Under the
// limit the text passes through unchanged; over it, exactly limit words
// are kept, trailing punctuation is stripped and a period appended.
// Truncation can cut mid-thought; that is the accepted price of
// determinism.
func EnforceWordLimit(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	truncated := strings.Join(words[:limit], " ")
	truncated = strings.TrimRight(truncated, ".,;:!?")
	return truncated + "."
}
