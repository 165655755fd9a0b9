package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → recorder → base. A nil rec skips logging.
func NewProvider(ctx context.Context, cfg Config, rec Recorder, log ErrorLogger) (Provider, error) {
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
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if rec != nil {
		base = WithRecorder(base, cfg.Provider, rec, log)
	}
	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromEnv uses QUIZFLIP_LLM_PROVIDER settings when present and
// otherwise probes the standard API key variables. It returns
// ErrNotConfigured when neither yields a provider.
func NewProviderFromEnv(ctx context.Context, rec Recorder, log ErrorLogger) (Provider, error) {
	cfg, ok := ConfigFromEnv()
	if !ok {
		cfg, ok = DiscoverConfig()
	}
	if !ok {
		return nil, ErrNotConfigured
	}
	return NewProvider(ctx, cfg, rec, log)
}
