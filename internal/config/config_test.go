package config

import (
	"os"
	"path/filepath"
	"testing"

	"caselens-mcp/internal/narrative"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBDriver != "sqlite3" {
		t.Errorf("expected sqlite3 default driver, got %q", cfg.DBDriver)
	}
	if cfg.DBDSN == "" {
		t.Error("expected a default sqlite DSN under the data path")
	}
	if cfg.Narrative.Provider != narrative.ProviderArk {
		t.Errorf("expected ark default provider, got %q", cfg.Narrative.Provider)
	}
	if cfg.Narrative.MaxRetries != 3 {
		t.Errorf("expected 3 default retries, got %d", cfg.Narrative.MaxRetries)
	}
}

func TestNarrativeConfigured(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Narrative.Provider = narrative.ProviderArk
	if cfg.NarrativeConfigured() {
		t.Error("ark without URL and key must not count as configured")
	}
	cfg.Narrative.ArkURL = "https://example.invalid/v1/chat/completions"
	cfg.Narrative.ArkAPIKey = "k"
	if !cfg.NarrativeConfigured() {
		t.Error("ark with URL and key must count as configured")
	}

	cfg = &AppConfig{}
	cfg.Narrative.Provider = narrative.ProviderAnthropic
	if cfg.NarrativeConfigured() {
		t.Error("anthropic without key must not count as configured")
	}
	cfg.Narrative.AnthropicKey = "k"
	if !cfg.NarrativeConfigured() {
		t.Error("anthropic with key must count as configured")
	}
}

func TestLoadRostersFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosters.yaml")
	content := "执法中队:\n  - 一中队\n  - 二中队\n公园广场:\n  - 中心公园\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &AppConfig{RostersPath: path}
	rosters, err := cfg.LoadRosters()
	if err != nil {
		t.Fatal(err)
	}
	units := rosters.Units("执法中队")
	if len(units) != 2 || units[0] != "一中队" {
		t.Errorf("unexpected roster: %v", units)
	}
}

func TestLoadRostersDefaultsWhenUnset(t *testing.T) {
	cfg := &AppConfig{}
	rosters, err := cfg.LoadRosters()
	if err != nil {
		t.Fatal(err)
	}
	if !rosters.Has("执法中队") {
		t.Error("expected built-in rosters")
	}
}

func TestLoadRostersBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosters.yaml")
	if err := os.WriteFile(path, []byte("not: [valid roster"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &AppConfig{RostersPath: path}
	if _, err := cfg.LoadRosters(); err == nil {
		t.Error("expected error for malformed roster file")
	}
}
