package llm

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider targets Groq's OpenAI-compatible chat completions endpoint.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider for Groq-hosted models.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingCredential{Provider: ProviderGroq, EnvVar: "PARLEY_GROQ_API_KEY"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}

	return &GroqProvider{OpenAIProvider: inner}, nil
}
