package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENWEATHER_API_KEY", "")

	// We pass nil for cmd to skip flags
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Expected default port %d, got %d", DefaultServerPort, cfg.Server.Port)
	}
	if cfg.Model.Provider != DefaultModelProvider {
		t.Errorf("Expected default provider %s, got %s", DefaultModelProvider, cfg.Model.Provider)
	}
	if cfg.Model.Name != DefaultModelName {
		t.Errorf("Expected default model %s, got %s", DefaultModelName, cfg.Model.Name)
	}
	if cfg.Model.MaxRetries != DefaultModelMaxRetries {
		t.Errorf("Expected default max retries %d, got %d", DefaultModelMaxRetries, cfg.Model.MaxRetries)
	}
	if cfg.Agent.MaxIterations != DefaultAgentMaxIterations {
		t.Errorf("Expected default max iterations %d, got %d", DefaultAgentMaxIterations, cfg.Agent.MaxIterations)
	}
	if cfg.Agent.FallbackMessage != DefaultAgentFallbackMessage {
		t.Errorf("Expected default fallback message %q, got %q", DefaultAgentFallbackMessage, cfg.Agent.FallbackMessage)
	}
	if cfg.Tools.Weather.BaseURL != DefaultWeatherToolBaseURL {
		t.Errorf("Expected default weather base url %s, got %s", DefaultWeatherToolBaseURL, cfg.Tools.Weather.BaseURL)
	}
	if cfg.Tools.Weather.Timeout != DefaultWeatherToolTimeout {
		t.Errorf("Expected default weather timeout %s, got %s", DefaultWeatherToolTimeout, cfg.Tools.Weather.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KAIWA_MODEL_PROVIDER", "anthropic")
	t.Setenv("KAIWA_MODEL_NAME", "claude-3-5-haiku-latest")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("PORT", "8088")
	t.Setenv("OPENWEATHER_API_KEY", "owm-test")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Model.Provider != "anthropic" {
		t.Errorf("Expected provider anthropic, got %s", cfg.Model.Provider)
	}
	if cfg.Model.Name != "claude-3-5-haiku-latest" {
		t.Errorf("Expected model name from env, got %s", cfg.Model.Name)
	}
	if cfg.Server.Port != 8088 {
		t.Errorf("Expected PORT override 8088, got %d", cfg.Server.Port)
	}
	if cfg.Model.APIKey != "" {
		t.Errorf("Expected empty API key, got %q", cfg.Model.APIKey)
	}
	if cfg.Tools.Weather.APIKey != "owm-test" {
		t.Errorf("Expected weather key from OPENWEATHER_API_KEY, got %q", cfg.Tools.Weather.APIKey)
	}
}

func TestLoadGlobalConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "")

	dir := filepath.Join(home, ".kaiwa")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	content := []byte("server:\n  port: 4100\nmodel:\n  provider: anthropic\n  name: claude-3-5-haiku-latest\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 4100 {
		t.Errorf("Expected port 4100 from file, got %d", cfg.Server.Port)
	}
	if cfg.Model.Provider != "anthropic" {
		t.Errorf("Expected provider anthropic from file, got %s", cfg.Model.Provider)
	}
	if cfg.Model.Name != "claude-3-5-haiku-latest" {
		t.Errorf("Expected model name from file, got %s", cfg.Model.Name)
	}
}

func TestDurationOrDefault(t *testing.T) {
	d, err := DurationOrDefault("", DefaultWeatherToolTimeout)
	if err != nil {
		t.Fatalf("Failed to parse default duration: %v", err)
	}
	if d.Seconds() != 5 {
		t.Errorf("Expected 5s, got %s", d)
	}

	if _, err := DurationOrDefault("not-a-duration", "1s"); err == nil {
		t.Error("Expected error for malformed duration")
	}
}
