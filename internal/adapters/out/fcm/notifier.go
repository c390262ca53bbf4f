// Package fcm delivers push notifications through Firebase Cloud Messaging.
package fcm

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"smartdelivery/internal/core/ports"
)

// multicastSender is the slice of the FCM messaging client the notifier
// uses, extracted so tests can substitute a double.
type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// Notifier implements ports.Notifier on Firebase Cloud Messaging.
type Notifier struct {
	client multicastSender
	logger *slog.Logger
}

// NewNotifier initializes the Firebase app from a service-account
// credentials file and returns the notifier.
func NewNotifier(ctx context.Context, credentialsFile string, logger *slog.Logger) (*Notifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing fcm client: %w", err)
	}
	return NewNotifierWithClient(client, logger), nil
}

// NewNotifierWithClient wraps an already-built messaging client.
func NewNotifierWithClient(client multicastSender, logger *slog.Logger) *Notifier {
	return &Notifier{
		client: client,
		logger: logger.With("component", "fcm_notifier"),
	}
}

// Send fans the notification out to every token in one multicast call.
// Per-token failures are logged and counted, never escalated.
func (n *Notifier) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (ports.SendReport, error) {
	if len(tokens) == 0 {
		return ports.SendReport{}, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	resp, err := n.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return ports.SendReport{}, fmt.Errorf("sending multicast: %w", err)
	}

	for i, r := range resp.Responses {
		if r.Error != nil {
			n.logger.WarnContext(ctx, "push delivery failed for token",
				"token_index", i, "error", r.Error)
		}
	}

	return ports.SendReport{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}, nil
}
