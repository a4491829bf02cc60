package essay

import (
	"context"
	"encoding/json"
	"fmt"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/textutil"
)

// CompareResult is the judge's verdict on two essays.
type CompareResult struct {
	ScoreA int    `json:"scoreA"`
	ScoreB int    `json:"scoreB"`
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

// Compare judges two essays against each other with a single completion
// call. Code-fence wrapping on the model output is tolerated; anything
// that is not valid JSON afterwards propagates as a format error.
func (e *Engine) Compare(ctx context.Context, essayA, essayB string) (CompareResult, error) {
	raw, err := e.completer.Chat(ctx, comparePrompt(essayA, essayB).Messages())
	if err != nil {
		return CompareResult{}, err
	}

	var result CompareResult
	if err := json.Unmarshal([]byte(textutil.StripCodeFences(raw)), &result); err != nil {
		return CompareResult{}, fmt.Errorf("%w: comparison verdict was not valid JSON: %v", apperr.ErrFormat, err)
	}
	return result, nil
}
