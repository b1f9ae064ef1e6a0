package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type LoggerConnectProps struct {
	Production bool

	// OutputPath overrides where log lines go. Empty keeps zap's default
	// (stderr). The terminal UI points this at a file so log output does not
	// draw over the alt screen.
	OutputPath string
}

type LogMiddleware struct {
	logger *zap.Logger
}

func Connect(args LoggerConnectProps) (*LogMiddleware, error) {
	cfg := zap.NewDevelopmentConfig()
	if args.Production {
		cfg = zap.NewProductionConfig()
	}
	if args.OutputPath != "" {
		cfg.OutputPaths = []string{args.OutputPath}
		cfg.ErrorOutputPaths = []string{args.OutputPath}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if args.Production {
		zap.ReplaceGlobals(logger)
		logger.Info("[Logger] Starting Logger with Prod Config")
	}

	return &LogMiddleware{logger: logger}, nil
}

// Nop returns a middleware that drops everything. Used by tests and by the
// terminal UI when no log file is configured.
func Nop() *LogMiddleware {
	return &LogMiddleware{logger: zap.NewNop()}
}

// Wrap adopts an existing zap logger, e.g. zaptest.NewLogger in tests.
func Wrap(l *zap.Logger) *LogMiddleware {
	return &LogMiddleware{logger: l}
}

func (l *LogMiddleware) Logger(ctx context.Context) *zap.Logger {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return l.logger
	}

	return l.logger.With(
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	)
}

func (l *LogMiddleware) Sync() error {
	return l.logger.Sync()
}
