package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type chatCapture struct {
	path   string
	auth   string
	model  string
	roles  []string
	status int
}

// newChatServer serves one canned chat completion and records what the
// client sent.
func newChatServer(t *testing.T, content, finish string, status int) (*httptest.Server, *chatCapture) {
	t.Helper()
	capture := &chatCapture{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capture.path = r.URL.Path
		capture.auth = r.Header.Get("Authorization")

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		capture.model = body.Model
		for _, m := range body.Messages {
			capture.roles = append(capture.roles, m.Role)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "error", "message": http.StatusText(status)},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}))
	t.Cleanup(server.Close)
	return server, capture
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	server, capture := newChatServer(t, feedbackReply, "stop", http.StatusOK)
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		System:    "Du bist Deutschlehrer.",
		Messages:  []Message{{Role: RoleUser, Content: "Bewerte: Guten Morgen"}},
		MaxTokens: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != feedbackReply {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 || resp.Usage.TotalTokens != 65 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if capture.path != "/chat/completions" {
		t.Fatalf("unexpected path %q", capture.path)
	}
	if len(capture.roles) != 2 || capture.roles[0] != "system" || capture.roles[1] != "user" {
		t.Fatalf("unexpected roles %v", capture.roles)
	}
}

func TestOpenAIProvider_LengthFinish(t *testing.T) {
	server, _ := newChatServer(t, `{"relevance`, "length", http.StatusOK)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: server.URL})

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("expected 'max_tokens', got %q", resp.StopReason)
	}
}

func TestOpenAIProvider_EmptyContent(t *testing.T) {
	server, _ := newChatServer(t, "", "stop", http.StatusOK)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: server.URL})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	server, _ := newChatServer(t, "", "", http.StatusTooManyRequests)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: server.URL})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	server, _ := newChatServer(t, "", "", http.StatusInternalServerError)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: server.URL})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestGroqProvider_UsesOpenAIWireFormat(t *testing.T) {
	server, capture := newChatServer(t, feedbackReply, "stop", http.StatusOK)
	p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test", Model: "llama-3.3-70b-versatile", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "llama-3.3-70b-versatile" {
		t.Fatalf("model = %q", p.ModelID())
	}

	if _, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capture.auth != "Bearer gsk-test" {
		t.Fatalf("unexpected Authorization %q", capture.auth)
	}
	if capture.model != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected model %q", capture.model)
	}
}

func TestOpenRouterProvider_PassesModelThrough(t *testing.T) {
	server, capture := newChatServer(t, feedbackReply, "stop", http.StatusOK)
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "anthropic/claude-sonnet-4", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capture.model != "anthropic/claude-sonnet-4" {
		t.Fatalf("unexpected model %q", capture.model)
	}
}

func TestOpenAICompatible_MissingKey(t *testing.T) {
	tests := []struct {
		name string
		make func() error
		env  string
	}{
		{"openai", func() error { _, err := NewOpenAIProvider(OpenAIConfig{}); return err }, "PARLEY_OPENAI_API_KEY"},
		{"groq", func() error { _, err := NewGroqProvider(GroqConfig{}); return err }, "PARLEY_GROQ_API_KEY"},
		{"openrouter", func() error { _, err := NewOpenRouterProvider(OpenRouterConfig{}); return err }, "PARLEY_OPENROUTER_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var missing *ErrMissingCredential
			if err := tt.make(); !errors.As(err, &missing) {
				t.Fatalf("expected ErrMissingCredential, got: %T (%v)", err, err)
			}
			if missing.EnvVar != tt.env {
				t.Fatalf("env var = %q, want %q", missing.EnvVar, tt.env)
			}
		})
	}
}
