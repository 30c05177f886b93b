package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Postgres.MaxConns != 15 {
		t.Errorf("expected max_conns 15, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("expected breaker timeout 30s, got %v", cfg.Breaker.Timeout)
	}
	if cfg.LLM.DefaultModel != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", cfg.LLM.DefaultModel)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
server:
  port: "9090"
  cors_origin: "http://example.com"
llm:
  default_model: "gpt-4o"
logging:
  level: "debug"
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.LLM.DefaultModel != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %s", cfg.LLM.DefaultModel)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	// Unchanged fields keep defaults
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL, got %s", cfg.NATS.URL)
	}
}

func TestLoadYAMLMissing(t *testing.T) {
	cfg := Defaults()
	if err := loadYAML(&cfg, "/nonexistent/path.yaml"); err != nil {
		t.Errorf("missing YAML should not error, got %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	cfg := Defaults()

	t.Setenv("REACHFORGE_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://test:test@db:5432/test")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("REACHFORGE_LOG_LEVEL", "warn")
	t.Setenv("REACHFORGE_BREAKER_TIMEOUT", "1m")
	t.Setenv("REACHFORGE_SESSION_TTL", "24h")

	loadEnv(&cfg)

	if cfg.Server.Port != "7070" {
		t.Errorf("expected port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Postgres.DSN != "postgres://test:test@db:5432/test" {
		t.Errorf("expected overridden DSN, got %s", cfg.Postgres.DSN)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("expected overridden API key, got %s", cfg.LLM.APIKey)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Breaker.Timeout != time.Minute {
		t.Errorf("expected breaker timeout 1m, got %v", cfg.Breaker.Timeout)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected session ttl 24h, got %v", cfg.Auth.SessionTTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := validate(&cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	bad := Defaults()
	bad.Postgres.DSN = ""
	if err := validate(&bad); err == nil {
		t.Error("expected error for empty DSN")
	}

	bad = Defaults()
	bad.Auth.BcryptCost = 2
	if err := validate(&bad); err == nil {
		t.Error("expected error for bcrypt cost out of range")
	}
}
