package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"scholar-ai/internal/apperr"
)

// DefaultTopK is the retrieval depth when the caller does not pick one.
const DefaultTopK = 3

// Retriever answers natural-language queries with the most similar rule
// chunks, concatenated for direct prompt inclusion.
type Retriever struct {
	store    Store
	embedder Embedder
	topK     int
}

func NewRetriever(store Store, embedder Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, embedder: embedder, topK: topK}
}

// Retrieve embeds the query and returns the text of the topK most
// similar chunks joined by blank lines. topK <= 0 uses the configured
// default. An unloaded store is a state error.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) (string, error) {
	if topK <= 0 {
		topK = r.topK
	}

	entries, err := r.store.Query(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: vector store is empty, knowledge not loaded", apperr.ErrState)
	}

	vectors, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return "", err
	}
	queryVec := vectors[0]

	type scored struct {
		text  string
		score float64
	}
	results := make([]scored, len(entries))
	for i, e := range entries {
		results[i] = scored{text: e.Text, score: CosineSimilarity(queryVec, e.Vector)}
	}

	// Stable sort keeps store order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if topK > len(results) {
		topK = len(results)
	}
	top := make([]string, topK)
	for i := 0; i < topK; i++ {
		top[i] = results[i].text
	}
	return strings.Join(top, "\n\n"), nil
}

// CosineSimilarity computes cosine similarity between two vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
