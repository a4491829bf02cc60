package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"

	"scholar-ai/internal/apperr"
)

// Transcribe converts an audio file into plain text via Whisper.
func (c *Client) Transcribe(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot open audio file: %v", apperr.ErrValidation, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  f,
	})
	if err != nil {
		return "", wrapCallError("audio transcription", err)
	}
	return resp.Text, nil
}
