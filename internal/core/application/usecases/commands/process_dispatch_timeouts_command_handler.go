package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/order"
)

// TimeoutCancelReason is recorded on orders cancelled by the sweep after the
// global dispatch timeout expired with no acceptance.
const TimeoutCancelReason = "no driver accepted within the dispatch timeout"

// ProcessTimeoutsResult reports what one sweep did.
type ProcessTimeoutsResult struct {
	// Escalated counts orders advanced to their next batch.
	Escalated int

	// Cancelled counts orders cancelled after the global timeout.
	Cancelled int

	// Exhausted counts orders whose candidate pool is spent and that keep
	// waiting for the global timeout.
	Exhausted int
}

// ProcessDispatchTimeoutsCommandHandler is the escalation sweep. For every
// dispatching order whose current batch window has expired it either cancels
// the order (global timeout reached) or advances it to the next batch of
// closest drivers. Each order runs in its own transaction so one poisoned
// order cannot stall the rest of the sweep.
type ProcessDispatchTimeoutsCommandHandler struct {
	uowFactory UoWFactory
	dispatcher *BatchDispatcher
	logger     *slog.Logger
}

// NewProcessDispatchTimeoutsCommandHandler creates the sweep handler.
func NewProcessDispatchTimeoutsCommandHandler(uowFactory UoWFactory, dispatcher *BatchDispatcher, logger *slog.Logger) ProcessDispatchTimeoutsCommandHandler {
	return ProcessDispatchTimeoutsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "dispatch_timeout_sweep"),
	}
}

// Handle runs one sweep. Per-order failures are logged and skipped; the
// sweep itself only fails when the candidate listing does.
func (h ProcessDispatchTimeoutsCommandHandler) Handle(ctx context.Context, cmd ProcessDispatchTimeoutsCommand) (ProcessTimeoutsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessTimeoutsResult{}, err
	}

	now := h.dispatcher.Now()

	ids, err := h.expiredOrderIDs(ctx, now.Add(-BatchWindow))
	if err != nil {
		return ProcessTimeoutsResult{}, err
	}

	var result ProcessTimeoutsResult
	for _, id := range ids {
		outcome, err := h.processOrder(ctx, id, now)
		if err != nil {
			h.logger.ErrorContext(ctx, "timeout sweep failed for order", "order", id, "error", err)
			continue
		}
		switch outcome {
		case sweepEscalated:
			result.Escalated++
		case sweepCancelled:
			result.Cancelled++
		case sweepExhausted:
			result.Exhausted++
		}
	}
	return result, nil
}

// expiredOrderIDs lists the dispatching orders whose batch window started
// before the threshold. Only IDs leave this transaction; each order is
// re-read under lock before being touched.
func (h ProcessDispatchTimeoutsCommandHandler) expiredOrderIDs(ctx context.Context, threshold time.Time) ([]uuid.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetDispatchingOlderThan(ctx, threshold)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

type sweepOutcome int

const (
	sweepSkipped sweepOutcome = iota
	sweepEscalated
	sweepCancelled
	sweepExhausted
)

// processOrder handles one expired order in its own transaction. The order
// is re-read under a row lock and re-checked: a concurrent accept may have
// assigned it between listing and locking, in which case the sweep skips it.
func (h ProcessDispatchTimeoutsCommandHandler) processOrder(ctx context.Context, id uuid.UUID, now time.Time) (sweepOutcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return sweepSkipped, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	if err != nil {
		return sweepSkipped, err
	}

	if o.Status() != order.StatusDispatching {
		return sweepSkipped, nil
	}
	if started := o.DispatchStartTime(); started == nil || now.Sub(*started) < BatchWindow {
		return sweepSkipped, nil
	}

	if first := o.FirstDispatchTime(); first != nil && now.Sub(*first) >= GlobalDispatchTimeout {
		if err := o.Cancel(TimeoutCancelReason); err != nil {
			return sweepSkipped, err
		}
		if err := uow.OrderRepository().Update(ctx, o); err != nil {
			return sweepSkipped, err
		}
		if err := uow.Commit(ctx); err != nil {
			return sweepSkipped, err
		}
		h.logger.InfoContext(ctx, "order cancelled after global dispatch timeout",
			"order", o.ID(), "notified", len(o.DispatchedDrivers()))
		return sweepCancelled, nil
	}

	batch, err := h.dispatcher.DispatchNextBatch(ctx, uow, o)
	if err != nil {
		return sweepSkipped, err
	}
	if err := uow.Commit(ctx); err != nil {
		return sweepSkipped, err
	}
	if len(batch) == 0 {
		return sweepExhausted, nil
	}
	h.dispatcher.NotifyBatch(ctx, o, batch)
	return sweepEscalated, nil
}
