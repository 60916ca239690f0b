package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/venusquiz/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging
// middleware. A nil eventRepo disables request logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	p := base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	}
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)

	return p, nil
}

// NewProviderFromEnv builds a Provider from VENUSQUIZ_* variables when a
// provider is selected explicitly, otherwise from the first standard API
// key found. apply may adjust the Config before it is used.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, apply func(*Config)) (Provider, error) {
	var cfg Config
	if HasExplicitConfig() {
		cfg = ConfigFromEnv()
	} else {
		var ok bool
		cfg, ok = DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no API key found: set GEMINI_API_KEY, API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")
		}
	}
	if apply != nil {
		apply(&cfg)
	}
	return NewProvider(ctx, cfg, eventRepo)
}
