package rag

import (
	"context"
	"fmt"
	"sync"

	"scholar-ai/internal/apperr"
)

// Entry is one stored (text, vector) pair.
type Entry struct {
	Text   string
	Vector []float32
}

// Store holds the embedded rules corpus. Load replaces the whole store;
// it is expected to run once at startup, before retrieval traffic.
type Store interface {
	Load(ctx context.Context, chunks []string, vectors [][]float32) error
	Query(ctx context.Context) ([]Entry, error)
}

// MemoryStore is the default in-process store. The mutex protects map
// integrity only; a Load racing live queries is still the caller's
// responsibility to avoid.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load replaces the entire store contents.
func (s *MemoryStore) Load(_ context.Context, chunks []string, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: chunks and embeddings length mismatch (%d vs %d)",
			apperr.ErrValidation, len(chunks), len(vectors))
	}
	entries := make([]Entry, len(chunks))
	for i, text := range chunks {
		entries[i] = Entry{Text: text, Vector: vectors[i]}
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Query returns the current store contents, possibly empty.
func (s *MemoryStore) Query(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
