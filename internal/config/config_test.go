package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Valid(t *testing.T) {
	ResetConfigForTest()
	tmp := "test_config.json"
	raw := []byte(`{
		"server": {
			"host": "localhost",
			"port": 8080
		},
		"openai": {
			"api_key": "sk-test",
			"model": "gpt-4o-mini"
		},
		"knowledge": {
			"rules_path": "knowledge/essay_rules.txt"
		},
		"user_api_url": "http://localhost:9000/api/user/all"
	}`)
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	defer os.Remove(tmp)

	cfg, err := LoadConfig(tmp)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Knowledge.RulesPath != "knowledge/essay_rules.txt" {
		t.Errorf("knowledge config not loaded")
	}
	// Defaults fill unset fields.
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.Knowledge.MaxChunkSize != 1000 || cfg.Knowledge.TopK != 3 {
		t.Errorf("expected chunking defaults, got %+v", cfg.Knowledge)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfigForTest()
	if _, err := LoadConfig("does_not_exist.json"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	ResetConfigForTest()
	tmp := "test_config_bad.json"
	if err := os.WriteFile(tmp, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	defer os.Remove(tmp)

	if _, err := LoadConfig(tmp); err == nil {
		t.Fatal("expected error for invalid config format")
	}
}

func TestLoadConfig_EnvKeyOverride(t *testing.T) {
	ResetConfigForTest()
	tmp := "test_config_env.json"
	raw := []byte(`{"openai": {"api_key": "sk-from-file"}}`)
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	defer os.Remove(tmp)

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	cfg, err := LoadConfig(tmp)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("expected env key to win, got %q", cfg.OpenAI.APIKey)
	}
}
