package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"scholar-ai/internal/apperr"
)

// scrollLimit bounds a full-store read. The rules corpus is a few dozen
// chunks, so a single scroll page always covers it.
const scrollLimit = 4096

// QdrantStore is an optional qdrant-backed store. Load drops and
// recreates the collection to keep replace-wholesale semantics.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

func NewQdrantStore(qdrantURL, collection, apiKey string) (*QdrantStore, error) {
	qdrantURL = strings.TrimPrefix(qdrantURL, "http://")
	qdrantURL = strings.TrimPrefix(qdrantURL, "https://")

	host := qdrantURL
	if idx := strings.Index(qdrantURL, ":"); idx != -1 {
		host = qdrantURL[:idx]
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   6334, // gRPC port
		APIKey: apiKey,
		UseTLS: false,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create qdrant client: %v", apperr.ErrIntegration, err)
	}
	return &QdrantStore{client: client, collection: collection}, nil
}

func (s *QdrantStore) Load(ctx context.Context, chunks []string, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: chunks and embeddings length mismatch (%d vs %d)",
			apperr.ErrValidation, len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("%w: failed to check collection: %v", apperr.ErrIntegration, err)
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("%w: failed to drop collection: %v", apperr.ErrIntegration, err)
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(len(vectors[0])),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create collection: %v", apperr.ErrIntegration, err)
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, text := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(i)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{"text": text}),
		}
	}

	wait := true
	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upsert rule chunks: %v", apperr.ErrIntegration, err)
	}
	return nil
}

func (s *QdrantStore) Query(ctx context.Context) ([]Entry, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check collection: %v", apperr.ErrIntegration, err)
	}
	if !exists {
		return nil, nil
	}

	limit := uint32(scrollLimit)
	points, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.collection,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scroll failed: %v", apperr.ErrIntegration, err)
	}

	entries := make([]Entry, 0, len(points))
	for _, p := range points {
		entries = append(entries, Entry{
			Text:   p.Payload["text"].GetStringValue(),
			Vector: p.Vectors.GetVector().GetData(),
		})
	}
	return entries, nil
}
