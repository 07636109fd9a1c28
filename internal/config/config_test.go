package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Server.Provider != ProviderGroq {
		t.Errorf("default provider = %q, want groq", cfg.Server.Provider)
	}
	if cfg.Server.DailyLimit != 5 {
		t.Errorf("default daily limit = %d, want 5", cfg.Server.DailyLimit)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Client.Theme != ThemeDark {
		t.Errorf("theme = %q, want dark", cfg.Client.Theme)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `server:
  port: 9090
  provider: openai
  model: gpt-4o-mini
client:
  theme: light
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Provider != ProviderOpenAI {
		t.Errorf("provider = %q, want openai", cfg.Server.Provider)
	}
	if cfg.Client.Theme != ThemeLight {
		t.Errorf("theme = %q, want light", cfg.Client.Theme)
	}
	// Untouched values keep their defaults.
	if cfg.Server.DailyLimit != 5 {
		t.Errorf("daily limit = %d, want 5", cfg.Server.DailyLimit)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SCHOOLAI_SERVER_PORT", "7000")

	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want 7000 from env", cfg.Server.Port)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := DefaultConfig()
	cfg.Client.Theme = ThemeLight
	cfg.Server.Port = 9999
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Client.Theme != ThemeLight {
		t.Errorf("theme = %q, want light", got.Client.Theme)
	}
	if got.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", got.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad provider", func(c *Config) { c.Server.Provider = "claude" }},
		{"empty model", func(c *Config) { c.Server.Model = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad theme", func(c *Config) { c.Client.Theme = "sepia" }},
		{"bad daily limit", func(c *Config) { c.Server.DailyLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark {
		t.Error("light toggles to dark")
	}
	if ThemeDark.Toggle() != ThemeLight {
		t.Error("dark toggles to light")
	}
}

func TestDefaultModel(t *testing.T) {
	if got := DefaultModel(ProviderGroq); got != "llama-3.1-8b-instant" {
		t.Errorf("groq default = %q", got)
	}
	if got := DefaultModel("unknown"); got != "llama-3.1-8b-instant" {
		t.Errorf("unknown provider default = %q", got)
	}
}
