package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(feedbackReply), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage("kein JSON")})

	first, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "eins"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != feedbackReply {
		t.Fatalf("unexpected content: %s", first.Content)
	}
	if first.Usage.InputTokens != 10 || first.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", first)
	}

	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != "kein JSON" {
		t.Fatalf("unexpected content: %s", second.Content)
	}
	if mock.CallCount() != 2 || mock.Calls[0].Messages[0].Content != "eins" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
}

func TestMockProvider_EmptyQueueIsUnavailable(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, "feedback")
	if p := PurposeFrom(ctx); p != "feedback" {
		t.Fatalf("expected 'feedback', got %q", p)
	}
}

func TestNewProvider_MockIsWrapped(t *testing.T) {
	repo := &recordingRepo{}
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock, Retry: RetryConfig{MaxAttempts: 1}}, repo, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry wrapper outermost, got %T", p)
	}

	// An empty mock fails every call, and the failure is still audited.
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error from empty mock")
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed audit row, got %+v", repo.events)
	}
}

func TestNewProvider_MissingKeyFailsEarly(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderAnthropic, Retry: RetryConfig{MaxAttempts: 1}}, nil, nil)
	var missing *ErrMissingCredential
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingCredential, got: %T (%v)", err, err)
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "carrier-pigeon"}, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	schema := &Schema{
		Name: "mock-greeting",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
			"required":   []any{"text"},
		},
	}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"text": "Hallo"}`)},
		MockResponse{Content: json.RawMessage(`{"greeting": "Hallo"}`)},
	)

	if _, err := mock.Generate(context.Background(), Request{Schema: schema}); err != nil {
		t.Fatalf("conforming content rejected: %v", err)
	}
	_, err := mock.Generate(context.Background(), Request{Schema: schema})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}
