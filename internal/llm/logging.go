package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that records every LLM request through
// a structured logger.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging wraps a Provider with request logging. A nil logger
// disables logging without changing behavior.
func WithLogging(p Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	l.log(ctx, "generate", req, resp, err, time.Since(start))
	return resp, err
}

func (l *LoggingProvider) GenerateStream(ctx context.Context, req Request, onDelta StreamHandler) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.GenerateStream(ctx, req, onDelta)
	l.log(ctx, "generate_stream", req, resp, err, time.Since(start))
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) log(ctx context.Context, op string, req Request, resp *Response, err error, elapsed time.Duration) {
	attrs := []any{
		slog.String("op", op),
		slog.String("model", l.inner.ModelID()),
		slog.Int("messages", len(req.Messages)),
		slog.Duration("elapsed", elapsed),
	}
	if req.Schema != nil {
		attrs = append(attrs, slog.String("schema", req.Schema.Name))
	}
	if resp != nil {
		attrs = append(attrs,
			slog.Int("input_tokens", resp.Usage.InputTokens),
			slog.Int("output_tokens", resp.Usage.OutputTokens),
			slog.String("stop_reason", resp.StopReason),
		)
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.logger.ErrorContext(ctx, "llm request failed", attrs...)
		return
	}
	l.logger.InfoContext(ctx, "llm request", attrs...)
}
