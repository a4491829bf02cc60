// Package input fuses the three request modalities (prompt text, voice
// recording, reference document) into one combined input for intent
// classification and generation.
package input

import (
	"context"
	"fmt"
	"strings"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/textutil"
)

// Transcriber converts an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// ExtractFunc converts a document file into text.
type ExtractFunc func(path, originalName string) (string, error)

// Combined is the fused request input. Text joins the non-empty parts in
// fixed order (prompt, voice, document) with blank lines; the individual
// parts stay available for the incremental update path.
type Combined struct {
	Prompt   string
	Voice    string
	Document string
	Text     string
}

// Fusion orchestrates transcription, document extraction and
// normalization.
type Fusion struct {
	transcriber Transcriber
	extract     ExtractFunc
}

func NewFusion(transcriber Transcriber, extract ExtractFunc) *Fusion {
	return &Fusion{transcriber: transcriber, extract: extract}
}

// Fuse normalizes and merges whichever modalities are present. At least
// one is mandatory.
func (f *Fusion) Fuse(ctx context.Context, promptText, audioPath, docPath, docName string) (Combined, error) {
	if strings.TrimSpace(promptText) == "" && audioPath == "" && docPath == "" {
		return Combined{}, fmt.Errorf("%w: at least one of prompt, audio or document is required", apperr.ErrValidation)
	}

	c := Combined{Prompt: textutil.Clean(promptText)}

	if audioPath != "" {
		voice, err := f.transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			return Combined{}, err
		}
		c.Voice = textutil.Clean(voice)
	}

	if docPath != "" {
		doc, err := f.extract(docPath, docName)
		if err != nil {
			return Combined{}, err
		}
		c.Document = textutil.Clean(doc)
	}

	var parts []string
	for _, p := range []string{c.Prompt, c.Voice, c.Document} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	c.Text = strings.Join(parts, "\n\n")
	return c, nil
}
