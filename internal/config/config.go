package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Model  ModelConfig  `koanf:"model"`
	Agent  AgentConfig  `koanf:"agent"`
	Tools  ToolsConfig  `koanf:"tools"`
}

type ServerConfig struct {
	Port            int    `koanf:"port"`
	LogLevel        string `koanf:"log_level"`
	ReadTimeout     string `koanf:"read_timeout"`
	WriteTimeout    string `koanf:"write_timeout"`
	IdleTimeout     string `koanf:"idle_timeout"`
	ShutdownTimeout string `koanf:"shutdown_timeout"`
}

type ModelConfig struct {
	Provider            string  `koanf:"provider"`
	Name                string  `koanf:"name"`
	APIKey              string  `koanf:"api_key"`
	BaseURL             string  `koanf:"base_url"`
	MaxRetries          int     `koanf:"max_retries"`
	RetryBaseDelay      string  `koanf:"retry_base_delay"`
	TransientRetryDelay string  `koanf:"transient_retry_delay"`
	RequestTimeout      string  `koanf:"request_timeout"`
	PricePer1KTokens    float64 `koanf:"price_per_1k_tokens"`
}

type AgentConfig struct {
	MaxIterations   int    `koanf:"max_iterations"`
	SystemPrompt    string `koanf:"system_prompt"`
	FallbackMessage string `koanf:"fallback_message"`
}

type ToolsConfig struct {
	Weather WeatherToolConfig `koanf:"weather"`
}

type WeatherToolConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Timeout string `koanf:"timeout"`
	Units   string `koanf:"units"`
	Lang    string `koanf:"lang"`
}

const (
	DefaultServerPort            = 3000
	DefaultServerLogLevel        = "info"
	DefaultServerReadTimeout     = "10s"
	DefaultServerWriteTimeout    = "120s"
	DefaultServerIdleTimeout     = "60s"
	DefaultServerShutdownTimeout = "5s"

	DefaultModelProvider            = "openai"
	DefaultModelName                = "gpt-4o-mini"
	DefaultOpenAIBaseURL            = "https://api.openai.com/v1"
	DefaultModelMaxRetries          = 3
	DefaultModelRetryBaseDelay      = "1s"
	DefaultModelTransientRetryDelay = "500ms"
	DefaultModelRequestTimeout      = "60s"
	DefaultModelPricePer1KTokens    = 0.002

	DefaultAgentMaxIterations   = 5
	DefaultAgentFallbackMessage = "I could not produce a final answer within the allowed number of steps. Please rephrase your request."

	DefaultWeatherToolBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultWeatherToolTimeout = "5s"
	DefaultWeatherToolUnits   = "metric"
	DefaultWeatherToolLang    = "en"
)

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"server.port":                 DefaultServerPort,
		"server.log_level":            DefaultServerLogLevel,
		"server.read_timeout":         DefaultServerReadTimeout,
		"server.write_timeout":        DefaultServerWriteTimeout,
		"server.idle_timeout":         DefaultServerIdleTimeout,
		"server.shutdown_timeout":     DefaultServerShutdownTimeout,
		"model.provider":              DefaultModelProvider,
		"model.name":                  DefaultModelName,
		"model.base_url":              "",
		"model.max_retries":           DefaultModelMaxRetries,
		"model.retry_base_delay":      DefaultModelRetryBaseDelay,
		"model.transient_retry_delay": DefaultModelTransientRetryDelay,
		"model.request_timeout":       DefaultModelRequestTimeout,
		"model.price_per_1k_tokens":   DefaultModelPricePer1KTokens,
		"agent.max_iterations":        DefaultAgentMaxIterations,
		"agent.system_prompt":         "",
		"agent.fallback_message":      DefaultAgentFallbackMessage,
		"tools.weather.base_url":      DefaultWeatherToolBaseURL,
		"tools.weather.timeout":       DefaultWeatherToolTimeout,
		"tools.weather.units":         DefaultWeatherToolUnits,
		"tools.weather.lang":          DefaultWeatherToolLang,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".kaiwa", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	// Environment Variables
	k.Load(env.Provider("KAIWA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "KAIWA_")), "_", ".", -1)
	}), nil)

	// CLI Flags
	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Model.Provider == "" {
		cfg.Model.Provider = DefaultModelProvider
	}

	// Post-Process: Inject standard Env Vars if missing
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil && parsed > 0 {
			cfg.Server.Port = parsed
		}
	}
	if cfg.Model.APIKey == "" {
		switch cfg.Model.Provider {
		case "openai":
			cfg.Model.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.Model.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "gemini":
			cfg.Model.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if cfg.Tools.Weather.APIKey == "" {
		cfg.Tools.Weather.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	}

	return &cfg, nil
}
