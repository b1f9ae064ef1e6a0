package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const feedbackReply = `{"relevance_score":4,"transcript":"Guten Morgen","what_worked":["Höflich"],"improvement":"Mehr Details","suggested_response":"Guten Morgen, Frau Müller!","score_explanation":"Passend"}`

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{
		APIKey:  "test-key",
		Model:   "claude-sonnet",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func anthropicMessage(w http.ResponseWriter, stopReason string, blocks ...string) {
	content := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		content = append(content, map[string]any{"type": "text", "text": b})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-sonnet-4-20250514",
		"stop_reason": stopReason,
		"usage": map[string]any{
			"input_tokens":  120,
			"output_tokens": 80,
		},
	})
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body string
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		anthropicMessage(w, "end_turn", feedbackReply)
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Bewerte: Guten Morgen"}},
		MaxTokens: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != feedbackReply {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 80 || resp.Usage.TotalTokens != 200 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if !strings.Contains(body, "claude-sonnet-4-20250514") {
		t.Fatalf("request did not carry resolved model id: %s", body)
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicMessage(w, "end_turn", "```json\n", feedbackReply, "\n```")
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "```json\n" + feedbackReply + "\n```"
	if string(resp.Content) != want {
		t.Fatalf("content = %q, want %q", resp.Content, want)
	}
}

func TestAnthropicProvider_MaxTokensStopReason(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicMessage(w, "max_tokens", `{"relevance_score":`)
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		MaxTokens: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("expected 'max_tokens', got %q", resp.StopReason)
	}
}

func TestAnthropicProvider_NoText(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicMessage(w, "end_turn")
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		MaxTokens: 100,
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func anthropicError(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": kind},
		})
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicError(http.StatusTooManyRequests, "rate_limit_error"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		MaxTokens: 100,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestAnthropicProvider_Unauthorized(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicError(http.StatusUnauthorized, "authentication_error"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestAnthropicProvider_ServerErrorNotRetriedBySDK(t *testing.T) {
	calls := 0
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		anthropicError(http.StatusInternalServerError, "api_error")(w, r)
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 HTTP call, got %d", calls)
	}
}

func TestNewAnthropicProvider_MissingKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-sonnet"})
	var missing *ErrMissingCredential
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingCredential, got: %T (%v)", err, err)
	}
	if missing.EnvVar != "PARLEY_ANTHROPIC_API_KEY" {
		t.Fatalf("unexpected env var %q", missing.EnvVar)
	}
}

func TestModelMapping(t *testing.T) {
	tests := []struct {
		models   map[string]string
		input    string
		expected string
	}{
		{anthropicModels, "claude-sonnet", "claude-sonnet-4-20250514"},
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-opus-4-1", "claude-opus-4-1"},
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{geminiModels, "gemini-pro", "gemini-2.5-pro"},
		{openaiModels, "gpt-4o-mini", "gpt-4o-mini"},
		{openaiModels, "llama-3.3-70b-versatile", "llama-3.3-70b-versatile"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, tt.models); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
