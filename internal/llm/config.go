package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	// Zero means no timeout.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-3-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config that makes a single attempt per request
// with no deadline.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-3-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from VENUSQUIZ_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("VENUSQUIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	setFromEnv(&cfg.Anthropic.APIKey, "VENUSQUIZ_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "VENUSQUIZ_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "VENUSQUIZ_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "VENUSQUIZ_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "VENUSQUIZ_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "VENUSQUIZ_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "VENUSQUIZ_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "VENUSQUIZ_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "VENUSQUIZ_OPENROUTER_MODEL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "VENUSQUIZ_OPENROUTER_BASE_URL")

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// HasExplicitConfig reports whether a provider was chosen through
// VENUSQUIZ_LLM_PROVIDER.
func HasExplicitConfig() bool {
	return os.Getenv("VENUSQUIZ_LLM_PROVIDER") != ""
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. API_KEY is read as a Gemini key.
// Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, key := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(key); k != "" {
			cfg.Provider = "gemini"
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("VENUSQUIZ_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("VENUSQUIZ_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("VENUSQUIZ_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("VENUSQUIZ_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
