package ports

import "context"

// SendReport summarizes a notification fan-out. Per-token failures are
// logged by the adapter, never escalated to the dispatch flow.
type SendReport struct {
	SuccessCount int
	FailureCount int
}

// Notifier delivers push notifications to a set of device tokens in one
// fan-out call. An empty token set is a no-op.
type Notifier interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (SendReport, error)
}
