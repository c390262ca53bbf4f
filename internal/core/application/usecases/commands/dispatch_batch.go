package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/services"
	"smartdelivery/internal/core/ports"
	"smartdelivery/internal/pkg/errs"
)

const (
	// BatchWindow is how long one notification batch is given before the
	// timeout sweep advances to the next batch.
	BatchWindow = 30 * time.Second

	// GlobalDispatchTimeout is the total time an order may spend in
	// dispatching, measured from the first batch, before it is cancelled.
	GlobalDispatchTimeout = 3 * time.Minute
)

var (
	// ErrNoDriversAvailable is returned when the very first dispatch
	// attempt finds zero eligible candidates. Exhaustion after at least
	// one batch was sent is a soft no-op instead.
	ErrNoDriversAvailable = errors.New("no drivers available")

	// ErrOrderNotAvailable is returned when an accept call arrives for an
	// order that is no longer dispatching (already taken, cancelled or
	// timed out).
	ErrOrderNotAvailable = errors.New("order is no longer available")

	// ErrDriverNotAvailable is returned when a driver who was notified
	// became unavailable or unverified before accepting.
	ErrDriverNotAvailable = errors.New("driver is not available")
)

// BatchDispatcher runs one dispatch-batch step for an order: select the
// closest not-yet-notified eligible drivers, record the batch on the order
// and fan out the push notifications. Both the explicit dispatch request and
// the timeout sweep drive it.
type BatchDispatcher struct {
	selector services.BatchSelector
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewBatchDispatcher creates a BatchDispatcher. A nil clock defaults to
// time.Now.
func NewBatchDispatcher(notifier ports.Notifier, logger *slog.Logger, clock func() time.Time) *BatchDispatcher {
	if clock == nil {
		clock = time.Now
	}
	return &BatchDispatcher{
		selector: services.NewBatchSelector(),
		notifier: notifier,
		logger:   logger.With("component", "batch_dispatcher"),
		now:      clock,
	}
}

// Now returns the dispatcher's current time, shared with the timeout sweep
// so both sides observe the same clock.
func (d *BatchDispatcher) Now() time.Time {
	return d.now()
}

// DispatchNextBatch advances the order to its next notification batch inside
// the caller's transaction and returns the batch so the caller can notify it
// once the transaction committed. An empty batch with a nil error is the soft
// no-op case where the candidate pool is exhausted mid-cycle (the order then
// stays in dispatching until the global timeout cancels it).
func (d *BatchDispatcher) DispatchNextBatch(ctx context.Context, uow UoW, o *order.Order) ([]*driver.Driver, error) {
	requireSector := true
	if _, err := uow.SectorRuleRepository().GetByType(ctx, o.SectorType()); err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		requireSector = false
	}

	pool, err := uow.DriverRepository().GetAllDispatchable(ctx)
	if err != nil {
		return nil, err
	}

	batch, err := d.selector.SelectNextBatch(o, pool, requireSector)
	if err != nil {
		return nil, err
	}

	if len(batch) == 0 {
		if len(o.DispatchedDrivers()) == 0 {
			return nil, ErrNoDriversAvailable
		}
		// Every eligible driver has been notified and nobody accepted.
		// The order stays in dispatching until the global timeout fires.
		d.logger.InfoContext(ctx, "dispatch cycle exhausted, waiting for global timeout",
			"order", o.ID(), "notified", len(o.DispatchedDrivers()))
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(batch))
	for _, c := range batch {
		ids = append(ids, c.ID())
	}

	if err := o.StartDispatching(ids, d.now()); err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	return batch, nil
}

// NotifyBatch fans out the new-order notification to every batch member that
// has a registered device token. Callers invoke it after their transaction
// committed, so a rolled-back dispatch never pings drivers. Drivers without a
// token are silently skipped but remain valid acceptors; send failures are
// logged, never escalated.
func (d *BatchDispatcher) NotifyBatch(ctx context.Context, o *order.Order, batch []*driver.Driver) {
	tokens := make([]string, 0, len(batch))
	for _, c := range batch {
		if c.FCMToken() != "" {
			tokens = append(tokens, c.FCMToken())
		}
	}
	if len(tokens) == 0 {
		return
	}

	title := "New delivery available"
	body := fmt.Sprintf("Order %s from %s. Distance: %.1fkm. Sector: %s",
		o.Reference(), o.SenderName(), o.DistanceKM(), o.SectorType())

	report, err := d.notifier.Send(ctx, tokens, title, body, orderNotificationData(o, "new_order"))
	if err != nil {
		d.logger.WarnContext(ctx, "batch notification failed", "order", o.ID(), "error", err)
		return
	}
	if report.FailureCount > 0 {
		d.logger.WarnContext(ctx, "batch notification partially failed",
			"order", o.ID(), "sent", report.SuccessCount, "failed", report.FailureCount)
	}
}

// orderNotificationData builds the data payload shared by every order push
// notification: identifiers, parties, sector, distance and both coordinate
// pairs as strings.
func orderNotificationData(o *order.Order, notificationType string) map[string]string {
	return map[string]string{
		"order_id":       o.ID().String(),
		"order_name":     o.Reference(),
		"type":           notificationType,
		"sender_name":    o.SenderName(),
		"receiver_name":  o.ReceiverName(),
		"receiver_phone": o.ReceiverPhone(),
		"sector_type":    o.SectorType(),
		"distance_km":    fmt.Sprintf("%.2f", o.DistanceKM()),
		"pickup_lat":     fmt.Sprintf("%.7f", o.Pickup().Latitude()),
		"pickup_long":    fmt.Sprintf("%.7f", o.Pickup().Longitude()),
		"drop_lat":       fmt.Sprintf("%.7f", o.Drop().Latitude()),
		"drop_long":      fmt.Sprintf("%.7f", o.Drop().Longitude()),
	}
}
