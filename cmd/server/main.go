package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"scholar-ai/internal/api"
	"scholar-ai/internal/config"
	"scholar-ai/internal/db"
	"scholar-ai/internal/document"
	"scholar-ai/internal/essay"
	"scholar-ai/internal/input"
	"scholar-ai/internal/knowledge"
	"scholar-ai/internal/llm"
	"scholar-ai/internal/profile"
	"scholar-ai/internal/rag"
	"scholar-ai/internal/redisdb"
	"scholar-ai/internal/scholarship"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	client, err := llm.NewClient(cfg.OpenAI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI client error: %v\n", err)
		os.Exit(1)
	}

	embedder := rag.NewOpenAIEmbedder(cfg.OpenAI)

	var store rag.Store
	if cfg.Qdrant.Enabled {
		qs, err := rag.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.Collection, cfg.Qdrant.APIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Qdrant error: %v\n", err)
			os.Exit(1)
		}
		store = qs
		log.Printf("[Main] using Qdrant vector store (%s)", cfg.Qdrant.Collection)
	} else {
		store = rag.NewMemoryStore()
		log.Printf("[Main] using in-memory vector store")
	}

	// The rules index must be ready before the first request; essay
	// generation without it would silently lose its grounding.
	if cfg.Knowledge.RulesPath != "" {
		if err := loadKnowledge(cfg, embedder, store); err != nil {
			fmt.Fprintf(os.Stderr, "Knowledge index error: %v\n", err)
			os.Exit(1)
		}
	} else {
		log.Printf("[Main] WARNING: no rules corpus configured, essay endpoints will fail on retrieval")
	}

	retriever := rag.NewRetriever(store, embedder, cfg.Knowledge.TopK)
	profiles := profile.NewGateway(cfg.UserAPIURL)
	engine := essay.NewEngine(client, retriever, profiles)
	memory := essay.NewMemory()
	fusion := input.NewFusion(client, document.Extract)

	scraper := scholarship.NewScraper(cfg.ScrapeLimit)
	catalog := scholarship.NewService(db.DB, rdb, cfg.ScholarAPI, time.Duration(cfg.ScrapeTTL)*time.Second)
	recommender := scholarship.NewRecommender(client)

	r := api.SetupRouter(api.Deps{
		Memory:      memory,
		Engine:      engine,
		Fusion:      fusion,
		Users:       profiles,
		Scraper:     scraper,
		Catalog:     catalog,
		Recommender: recommender,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// loadKnowledge builds the rules index: read corpus, chunk, embed, load
// into the vector store.
func loadKnowledge(cfg *config.Config, embedder rag.Embedder, store rag.Store) error {
	corpus, err := knowledge.Load(cfg.Knowledge.RulesPath)
	if err != nil {
		return err
	}
	chunks := knowledge.Chunk(corpus, cfg.Knowledge.MaxChunkSize)
	if len(chunks) == 0 {
		return fmt.Errorf("rules corpus produced no usable chunks")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	vectors, err := embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return err
	}
	if err := store.Load(ctx, chunks, vectors); err != nil {
		return err
	}
	log.Printf("[Main] indexed %d rule chunks", len(chunks))
	return nil
}
