package essay

import (
	"fmt"
	"strings"

	"scholar-ai/internal/llm"
	"scholar-ai/internal/profile"
)

// section describes one of the five structural parts of the essay.
type section struct {
	name      string
	ruleQuery string
	words     func(WordBudget) int
}

// sections in final concatenation order.
var sections = []section{
	{
		name:      "INTRODUCTION",
		ruleQuery: "rules for writing a strong scholarship essay introduction and opening hook",
		words:     func(b WordBudget) int { return b.Intro },
	},
	{
		name:      "CHALLENGE",
		ruleQuery: "rules for describing a personal challenge or hardship in a scholarship essay",
		words:     func(b WordBudget) int { return b.Challenge },
	},
	{
		name:      "ACTION",
		ruleQuery: "rules for showing concrete actions and initiative taken in a scholarship essay",
		words:     func(b WordBudget) int { return b.Action },
	},
	{
		name:      "GROWTH",
		ruleQuery: "rules for reflecting on personal growth and lessons learned in a scholarship essay",
		words:     func(b WordBudget) int { return b.Growth },
	},
	{
		name:      "FUTURE GOAL",
		ruleQuery: "rules for connecting a scholarship essay to future goals and career plans",
		words:     func(b WordBudget) int { return b.Goal },
	},
}

// bannedCliches are phrases the model is told never to produce.
var bannedCliches = []string{
	"ever since I was a child",
	"passion for helping others",
	"make the world a better place",
	"outside my comfort zone",
}

// profileBlock renders the profile as a fixed-format fact block. Empty
// fields render as empty values, never as null, to keep the prompt
// well-formed.
func profileBlock(p profile.Profile) string {
	return fmt.Sprintf(
		"STUDENT PROFILE:\nName: %s\nMajor: %s\nCareer goal: %s\nAchievement: %s\nBackground: %s\nChallenges: %s",
		p.Name, p.Major, p.CareerGoal, p.Achievement, p.Background, p.Challenges,
	)
}

// sectionPrompt builds the generation request for a single section.
func sectionPrompt(sec section, topic, profileText, rules string, words int) llm.PromptRequest {
	return llm.PromptRequest{
		SystemInstruction: fmt.Sprintf(
			"You are writing the %s section of a scholarship essay in first person.", sec.name),
		Constraints: []string{
			"Use ONLY facts present in the student profile and the request below; never invent names, events, or numbers",
			fmt.Sprintf("Never use these phrases: %s", strings.Join(bannedCliches, "; ")),
			fmt.Sprintf("Write roughly %d words for this section", words),
			"If specific facts are missing, write a grounded, honest, general reflection instead of inventing details",
			"Return only the section text, with no heading or commentary",
		},
		Facts: []string{
			profileText,
			"ESSAY REQUEST:\n" + topic,
			"WRITING RULES:\n" + rules,
		},
	}
}

// updatePrompt builds the incremental-refinement request used when an
// essay already exists and new text arrives.
func updatePrompt(existingEssay, newText string) llm.PromptRequest {
	return llm.PromptRequest{
		SystemInstruction: "You are refining an existing academic essay.",
		Constraints: []string{
			"Do NOT invent facts",
			"Only integrate the new information",
			"Preserve tone and structure",
		},
		Facts: []string{
			"Existing essay:\n" + existingEssay,
			"New input:\n" + newText,
		},
	}
}

// documentPrompt builds the reference-document merge request.
func documentPrompt(existingEssay, documentText string) llm.PromptRequest {
	return llm.PromptRequest{
		SystemInstruction: "You are updating an existing academic essay using a reference document.",
		Constraints: []string{
			"Do NOT rewrite the essay from scratch",
			"Preserve structure, tone, and voice",
			"Only extract relevant facts from the document",
			"Integrate carefully without duplication",
			"Do NOT add assumptions or new facts",
		},
		Facts: []string{
			"Current essay:\n" + existingEssay,
			"Reference document:\n" + documentText,
		},
	}
}

// comparePrompt builds the essay-comparison judging request.
func comparePrompt(essayA, essayB string) llm.PromptRequest {
	return llm.PromptRequest{
		SystemInstruction: "You are an impartial scholarship essay judge comparing two essays.",
		Constraints: []string{
			"Score each essay from 1 to 10 for clarity, specificity, and authenticity",
			`Return RAW JSON only, shaped as {"scoreA": number, "scoreB": number, "winner": "A"|"B", "reason": string}`,
			"No markdown, no explanation outside the JSON",
		},
		Facts: []string{
			fmt.Sprintf("ESSAY A:\n%s\n\nESSAY B:\n%s", essayA, essayB),
		},
	}
}
