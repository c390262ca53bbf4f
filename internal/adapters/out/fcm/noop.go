package fcm

import (
	"context"
	"log/slog"

	"smartdelivery/internal/core/ports"
)

// NoopNotifier stands in when no Firebase credentials are configured, for
// local development and tests. Sends are logged and reported as successes.
type NoopNotifier struct {
	logger *slog.Logger
}

// NewNoopNotifier creates the stand-in notifier.
func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger.With("component", "noop_notifier")}
}

// Send logs the would-be notification.
func (n *NoopNotifier) Send(ctx context.Context, tokens []string, title, body string, _ map[string]string) (ports.SendReport, error) {
	n.logger.InfoContext(ctx, "push notifications disabled, dropping message",
		"recipients", len(tokens), "title", title)
	return ports.SendReport{SuccessCount: len(tokens)}, nil
}
