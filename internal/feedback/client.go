package feedback

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/llm"
	"github.com/abhisek/parley/internal/logger"
)

// Purpose tags feedback calls in the LLM audit log.
const Purpose = "feedback"

// DefaultMaxTokens bounds the tutor reply.
const DefaultMaxTokens = 1000

// DefaultTimeout bounds one feedback request, retries included.
const DefaultTimeout = 90 * time.Second

// Config tunes the feedback request.
type Config struct {
	MaxTokens int

	// Structured asks the provider for schema-constrained JSON instead of
	// relying on the prompt alone. A reply the provider cannot fit to the
	// schema ends in the fallback record like any other bad reply.
	Structured bool

	Timeout time.Duration
}

// DefaultConfig returns the feedback defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: DefaultMaxTokens, Timeout: DefaultTimeout}
}

// ConfigFromEnv reads PARLEY_LLM_MAX_TOKENS, PARLEY_LLM_STRUCTURED and
// PARLEY_LLM_TIMEOUT on top of DefaultConfig. Invalid values keep the
// default.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("PARLEY_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("PARLEY_LLM_STRUCTURED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Structured = b
		}
	}
	if v := os.Getenv("PARLEY_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// Requester is what the session controller needs from a feedback source.
type Requester interface {
	Request(ctx context.Context, sc catalog.Scenario, prompt, response string, history []Turn) Record
}

// Client requests tutor feedback through an llm.Provider.
type Client struct {
	provider llm.Provider
	cfg      Config
	log      *logger.LogMiddleware
}

var _ Requester = (*Client)(nil)

// NewClient builds a Client. A nil log discards output.
func NewClient(p llm.Provider, cfg Config, log *logger.LogMiddleware) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{provider: p, cfg: cfg, log: log}
}

// Request returns the tutor's assessment of response. It never fails: on a
// transport error, an empty reply or a reply that does not parse it logs
// the problem and returns Fallback(response).
func (c *Client) Request(ctx context.Context, sc catalog.Scenario, prompt, response string, history []Turn) Record {
	tracer := otel.Tracer("feedback/Request")
	ctx, span := tracer.Start(ctx, "Request")
	defer span.End()

	span.SetAttributes(
		attribute.String("scenario.id", sc.ID),
		attribute.Int("history.turns", len(history)),
		attribute.String("llm.model", c.provider.ModelID()),
		attribute.Bool("llm.structured", c.cfg.Structured),
	)

	req := llm.Request{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: BuildPrompt(sc, prompt, response, history),
		}},
		MaxTokens: c.cfg.MaxTokens,
	}
	if c.cfg.Structured {
		req.Schema = recordSchema
	}

	genCtx, cancel := context.WithTimeout(llm.WithPurpose(ctx, Purpose), c.cfg.Timeout)
	defer cancel()

	resp, err := c.provider.Generate(genCtx, req)
	if err != nil {
		return c.fallback(ctx, span, response, "feedback request failed", err)
	}

	raw := string(resp.Content)
	if strings.TrimSpace(raw) == "" {
		return c.fallback(ctx, span, response, "feedback reply empty", ErrEmptyReply)
	}

	rec, err := Parse(raw)
	if err != nil {
		return c.fallback(ctx, span, response, "feedback reply unparseable", err,
			zap.Int("reply.length", len(raw)))
	}

	span.SetAttributes(attribute.Float64("feedback.score", rec.RelevanceScore))
	c.log.Logger(ctx).Info("feedback received",
		zap.String("scenario", sc.ID),
		zap.Float64("score", rec.RelevanceScore))
	return rec
}

func (c *Client) fallback(ctx context.Context, span trace.Span, response, msg string, err error, fields ...zap.Field) Record {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	c.log.Logger(ctx).Warn(msg, append(fields, zap.Error(err))...)
	return Fallback(response)
}
