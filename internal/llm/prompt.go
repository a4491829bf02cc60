package llm

import "strings"

// PromptRequest is a typed generative call: a system instruction, the
// facts the model may draw on, and hard constraints. Business logic
// builds these with pure functions; they render to role-tagged messages
// only here, at the gateway boundary, so callers stay testable without
// string-matching rendered prompts.
type PromptRequest struct {
	SystemInstruction string
	Facts             []string
	Constraints       []string
}

// Messages renders the request to the wire format.
func (p PromptRequest) Messages() []Message {
	instruction := p.SystemInstruction
	if len(p.Constraints) > 0 {
		instruction += "\nRules:\n- " + strings.Join(p.Constraints, "\n- ")
	}
	msgs := []Message{System(instruction)}
	for _, f := range p.Facts {
		msgs = append(msgs, User(f))
	}
	return msgs
}
