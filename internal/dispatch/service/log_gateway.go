package service

import (
	"context"
	"log/slog"
)

// LogGateway writes messages to the logger instead of delivering them.
// Send always succeeds; it is meant for local development.
type LogGateway struct {
	logger *slog.Logger
}

// NewLogGateway creates a LogGateway.
func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

// Send logs the message.
func (g *LogGateway) Send(ctx context.Context, recipient, body string) error {
	g.logger.InfoContext(ctx, "message delivered to log gateway",
		slog.String("recipient", recipient),
		slog.Int("body_length", len(body)),
	)
	return nil
}
