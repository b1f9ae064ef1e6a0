package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/parley/internal/logger"
	"github.com/abhisek/parley/internal/store"
)

// NewProvider validates cfg and builds the configured provider wrapped with
// retry and logging middleware. A missing API key fails here, before any
// session starts.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.LogMiddleware) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGroq:
		base, err = NewGroqProvider(cfg.Groq)
	case ProviderMock:
		// An empty mock fails every call, so every answer gets the canned
		// fallback feedback. Handy for demos without a key.
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	return WithRetry(logged, cfg.Retry), nil
}

// NewProviderFromEnv is NewProvider(ctx, ConfigFromEnv(), ...).
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, log *logger.LogMiddleware) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), eventRepo, log)
}
