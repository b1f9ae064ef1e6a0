package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderGroq       = "groq"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Groq       GroqConfig
	Retry      RetryConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-sonnet"
	BaseURL string // Optional. Proxies and tests.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "anthropic/claude-sonnet-4"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// GroqConfig holds Groq configuration. Groq speaks the OpenAI wire format.
type GroqConfig struct {
	APIKey  string
	Model   string // Default: "llama-3.3-70b-versatile"
	BaseURL string // Default: "https://api.groq.com/openai/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with defaults. Feedback requests are sent
// once; callers that want retries raise Retry.MaxAttempts.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAnthropic,
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "anthropic/claude-sonnet-4",
		},
		Groq: GroqConfig{
			Model: "llama-3.3-70b-versatile",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from PARLEY_* environment variables. When
// no provider is named explicitly it falls back to DiscoverConfig so a plain
// ANTHROPIC_API_KEY (or similar) is enough to get going.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if os.Getenv("PARLEY_LLM_PROVIDER") == "" {
		if discovered, found := DiscoverConfig(); found {
			cfg = discovered
		}
	}

	setString(&cfg.Provider, "PARLEY_LLM_PROVIDER")

	setString(&cfg.Anthropic.APIKey, "PARLEY_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "PARLEY_ANTHROPIC_MODEL")
	setString(&cfg.Anthropic.BaseURL, "PARLEY_ANTHROPIC_BASE_URL")

	setString(&cfg.OpenAI.APIKey, "PARLEY_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "PARLEY_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "PARLEY_OPENAI_BASE_URL")

	setString(&cfg.Gemini.APIKey, "PARLEY_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "PARLEY_GEMINI_MODEL")

	setString(&cfg.OpenRouter.APIKey, "PARLEY_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "PARLEY_OPENROUTER_MODEL")

	setString(&cfg.Groq.APIKey, "PARLEY_GROQ_API_KEY")
	setString(&cfg.Groq.Model, "PARLEY_GROQ_MODEL")

	if v := os.Getenv("PARLEY_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks standard API key env vars in priority order
// (Anthropic → OpenAI → Gemini → OpenRouter → Groq) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if none.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = ProviderGroq
		cfg.Groq.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks the retry settings and that the selected provider has its
// required API key set.
func (c Config) Validate() error {
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}

	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "PARLEY_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "PARLEY_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "PARLEY_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "PARLEY_OPENROUTER_API_KEY"
	case ProviderGroq:
		key, env = c.Groq.APIKey, "PARLEY_GROQ_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return &ErrMissingCredential{Provider: c.Provider, EnvVar: env}
	}
	return nil
}
