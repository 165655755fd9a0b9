package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one explanation request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// envOverrides lists QUIZFLIP_* variables and the field each one sets.
func envOverrides(cfg *Config) map[string]*string {
	return map[string]*string{
		"QUIZFLIP_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"QUIZFLIP_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"QUIZFLIP_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"QUIZFLIP_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"QUIZFLIP_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"QUIZFLIP_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"QUIZFLIP_GEMINI_MODEL":       &cfg.Gemini.Model,
		"QUIZFLIP_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"QUIZFLIP_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	}
}

// ConfigFromEnv builds a Config from QUIZFLIP_* variables. ok is false when
// QUIZFLIP_LLM_PROVIDER is unset, in which case the caller should fall back
// to DiscoverConfig.
func ConfigFromEnv() (cfg Config, ok bool) {
	cfg = DefaultConfig()
	p := os.Getenv("QUIZFLIP_LLM_PROVIDER")
	if p == "" {
		return cfg, false
	}
	cfg.Provider = p

	for key, dst := range envOverrides(&cfg) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("QUIZFLIP_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg, true
}

// DiscoverConfig probes the standard API key variables in priority order
// (Anthropic, OpenAI, Gemini, OpenRouter) and configures the first provider
// found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (QUIZFLIP_%s_API_KEY)", c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}
