package accounting

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"smartdelivery/internal/core/ports"
)

// RetryConfig bounds the retry loop of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig retries twice more after the first failure with short
// exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

// RetryingGateway decorates an AccountingGateway with bounded retries.
// Only transient failures are retried: network errors and 429/5xx responses.
// Client errors (4xx) surface immediately.
type RetryingGateway struct {
	next   ports.AccountingGateway
	logger *slog.Logger
	cfg    RetryConfig
}

// NewRetryingGateway wraps the gateway with retry behavior.
func NewRetryingGateway(next ports.AccountingGateway, logger *slog.Logger, cfg RetryConfig) *RetryingGateway {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{
		next:   next,
		logger: logger.With("component", "accounting_gateway"),
		cfg:    cfg,
	}
}

// CreateInvoice retries the underlying call on transient failures.
func (g *RetryingGateway) CreateInvoice(ctx context.Context, req ports.InvoiceRequest) (string, error) {
	var ref string
	err := g.retry(ctx, "CreateInvoice", func() error {
		var callErr error
		ref, callErr = g.next.CreateInvoice(ctx, req)
		return callErr
	})
	return ref, err
}

// PostInvoice retries the underlying call on transient failures.
func (g *RetryingGateway) PostInvoice(ctx context.Context, invoiceRef string) error {
	return g.retry(ctx, "PostInvoice", func() error {
		return g.next.PostInvoice(ctx, invoiceRef)
	})
}

// RegisterCashPayment retries the underlying call on transient failures.
func (g *RetryingGateway) RegisterCashPayment(ctx context.Context, invoiceRef string) (ports.PaymentState, error) {
	var state ports.PaymentState
	err := g.retry(ctx, "RegisterCashPayment", func() error {
		var callErr error
		state, callErr = g.next.RegisterCashPayment(ctx, invoiceRef)
		return callErr
	})
	return state, err
}

func (g *RetryingGateway) retry(ctx context.Context, method string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(lastErr) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		g.logger.WarnContext(ctx, "accounting call failed, retrying",
			"method", method, "attempt", attempt, "delay", delay, "error", lastErr)

		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable treats network-level failures and throttling/server responses
// as transient.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	// Anything that never produced an HTTP status is a transport failure.
	return true
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
