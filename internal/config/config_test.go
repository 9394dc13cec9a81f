package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.LLMProvider != "http" {
		t.Fatalf("expected default provider http, got %q", cfg.LLMProvider)
	}
	if cfg.AssistantSessionTTL() != time.Hour {
		t.Fatalf("expected 1h session ttl, got %s", cfg.AssistantSessionTTL())
	}
	if cfg.AssistantRateWindow() != time.Minute {
		t.Fatalf("expected 1m rate window, got %s", cfg.AssistantRateWindow())
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected database url to be optional")
	}
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when LLM_API_KEY is missing")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("ASSISTANT_RATE_LIMIT", "5")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.LLMProvider != "openai" || cfg.AssistantRateLimit != 5 || cfg.RedisDB != 2 {
		t.Fatalf("expected overrides applied, got %+v", cfg)
	}
}
