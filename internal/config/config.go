package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type OpenAIConfig struct {
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	EmbeddingModel string `json:"embedding_model"`
	TimeoutSec     int    `json:"timeout_sec"`
}

type KnowledgeConfig struct {
	RulesPath    string `json:"rules_path"`
	MaxChunkSize int    `json:"max_chunk_size"`
	TopK         int    `json:"top_k"`
}

type QdrantConfig struct {
	Enabled    bool   `json:"enabled"`
	URL        string `json:"url"`
	Collection string `json:"collection"`
	APIKey     string `json:"api_key"`
}

type Config struct {
	Server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"server"`
	Database struct {
		PostgresDSN string `json:"postgres_dsn"`
		SQLitePath  string `json:"sqlite_path"`
	} `json:"database"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	OpenAI      OpenAIConfig    `json:"openai"`
	Knowledge   KnowledgeConfig `json:"knowledge"`
	Qdrant      QdrantConfig    `json:"qdrant"`
	UserAPIURL  string          `json:"user_api_url"`
	ScholarAPI  string          `json:"scholarship_api_url"`
	ScrapeTTL   int             `json:"scrape_cache_ttl_sec"`
	ScrapeLimit int             `json:"scrape_enrich_limit"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton). The OpenAI API key
// can also come from the OPENAI_API_KEY environment variable; the env
// value wins when both are present.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.OpenAI.APIKey = key
		}
		applyDefaults(&c)
		cfg = &c
	})
	return cfg, cfgErr
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "scholar.db"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.EmbeddingModel == "" {
		c.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if c.OpenAI.TimeoutSec == 0 {
		c.OpenAI.TimeoutSec = 60
	}
	if c.Knowledge.MaxChunkSize == 0 {
		c.Knowledge.MaxChunkSize = 1000
	}
	if c.Knowledge.TopK == 0 {
		c.Knowledge.TopK = 3
	}
	if c.Qdrant.Collection == "" {
		c.Qdrant.Collection = "essay_rules"
	}
	if c.ScrapeTTL == 0 {
		c.ScrapeTTL = 600
	}
	if c.ScrapeLimit == 0 {
		c.ScrapeLimit = 15
	}
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
