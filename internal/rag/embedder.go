// Package rag holds the retrieval pipeline over the essay-rules corpus:
// an embedding gateway, a replace-wholesale vector store and a cosine
// similarity retriever.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/config"
)

// maxEmbedInputLen guards against oversized inputs reaching the API.
const maxEmbedInputLen = 2000

// Embedder converts text batches into fixed-dimension vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIEmbedder calls the OpenAI embeddings endpoint, one request per
// batch. No caching, no retry.
type OpenAIEmbedder struct {
	api     openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

func NewOpenAIEmbedder(cfg config.OpenAIConfig) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		api:     openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		apiKey:  cfg.APIKey,
		model:   cfg.EmbeddingModel,
		timeout: time.Duration(cfg.TimeoutSec) * time.Second,
	}
}

// EmbedTexts filters the batch to non-empty entries under the size guard
// and returns one vector per kept input, in input order.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	clean := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t != "" && len(t) < maxEmbedInputLen {
			clean = append(clean, t)
		}
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("%w: no valid texts for embedding", apperr.ErrConfiguration)
	}
	if e.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", apperr.ErrConfiguration)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: clean},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: embedding call exceeded deadline", apperr.ErrTimeout)
		}
		return nil, fmt.Errorf("%w: embedding call failed: %v", apperr.ErrIntegration, err)
	}
	if len(resp.Data) != len(clean) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", apperr.ErrFormat, len(clean), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		v := make([]float32, len(d.Embedding))
		for j, f := range d.Embedding {
			v[j] = float32(f)
		}
		vectors[i] = v
	}
	return vectors, nil
}
