package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/parley/internal/logger"
	"github.com/abhisek/parley/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func observedLogger() (*logger.LogMiddleware, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return logger.Wrap(zap.New(core)), logs
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	log, logs := observedLogger()
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(feedbackReply),
		Usage:   Usage{InputTokens: 11, OutputTokens: 7},
	})
	p := WithLogging(mock, "anthropic", repo, log)

	ctx := WithPurpose(context.Background(), "feedback")
	if _, err := p.Generate(ctx, Request{System: "Tutor", Messages: []Message{{Role: RoleUser, Content: "Hallo"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Success || ev.Provider != "anthropic" || ev.Purpose != "feedback" || ev.Model != "mock" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 11 || ev.OutputTokens != 7 {
		t.Fatalf("unexpected tokens: %+v", ev)
	}
	if ev.ResponseBody != feedbackReply {
		t.Fatalf("unexpected response body %q", ev.ResponseBody)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nTutor") || !strings.Contains(ev.RequestBody, "[user]\nHallo") {
		t.Fatalf("unexpected request body %q", ev.RequestBody)
	}
	if logs.FilterMessage("LLM request completed").Len() != 1 {
		t.Fatalf("expected completion log line, got %v", logs.All())
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	log, logs := observedLogger()
	p := WithLogging(NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("offline")}}), "groq", repo, log)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if !strings.Contains(repo.events[0].ErrorMessage, "offline") {
		t.Fatalf("error message not recorded: %q", repo.events[0].ErrorMessage)
	}
	if logs.FilterMessage("LLM request failed").Len() != 1 {
		t.Fatalf("expected failure log line")
	}
}

func TestLogging_AuditFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	log, logs := observedLogger()
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", repo, log)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("audit failure leaked into request: %v", err)
	}
	if logs.FilterMessage("failed to record LLM request event").Len() != 1 {
		t.Fatalf("expected audit warning")
	}
}

func TestLogging_NilRepoAndLogger(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}
