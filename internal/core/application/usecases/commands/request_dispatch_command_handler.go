package commands

import (
	"context"

	"smartdelivery/internal/pkg/errs"
)

// RequestDispatchResult reports what a dispatch request did.
type RequestDispatchResult struct {
	// Confirmed is set when an already-assigned driver was confirmed
	// instead of running a new batch.
	Confirmed bool

	// BatchSent is set when a new notification batch went out.
	BatchSent bool
}

// RequestDispatchCommandHandler starts or restarts the dispatch cycle for an
// order. If the order already carries a driver who is still available and
// verified, that driver is confirmed without notifying anyone; otherwise the
// next batch of closest eligible drivers is selected and notified.
type RequestDispatchCommandHandler struct {
	uowFactory UoWFactory
	dispatcher *BatchDispatcher
}

// NewRequestDispatchCommandHandler creates a handler for dispatch requests.
func NewRequestDispatchCommandHandler(uowFactory UoWFactory, dispatcher *BatchDispatcher) RequestDispatchCommandHandler {
	return RequestDispatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes a dispatch request inside one transaction. The order row
// is locked for the duration so the timeout sweep and concurrent accepts
// cannot interleave with the batch advance.
func (h RequestDispatchCommandHandler) Handle(ctx context.Context, cmd RequestDispatchCommand) (RequestDispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return RequestDispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RequestDispatchResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return RequestDispatchResult{}, err
	}

	if cmd.Force() {
		if err := o.ResetDispatch(); err != nil {
			return RequestDispatchResult{}, err
		}
	}

	if !o.Status().CanDispatch() {
		return RequestDispatchResult{}, errs.NewInvalidStateError("dispatch", o.Status().String())
	}

	// A pre-assigned driver who is still dispatchable short-circuits the
	// batch cycle entirely.
	if assigned := o.AssignedDriver(); assigned != nil && !cmd.Force() {
		d, err := uow.DriverRepository().Get(ctx, *assigned)
		if err != nil {
			return RequestDispatchResult{}, err
		}
		if d.IsDispatchable() {
			if err := o.ConfirmAssignment(); err != nil {
				return RequestDispatchResult{}, err
			}
			if err := uow.OrderRepository().Update(ctx, o); err != nil {
				return RequestDispatchResult{}, err
			}
			if err := uow.Commit(ctx); err != nil {
				return RequestDispatchResult{}, err
			}
			return RequestDispatchResult{Confirmed: true}, nil
		}
	}

	batch, err := h.dispatcher.DispatchNextBatch(ctx, uow, o)
	if err != nil {
		return RequestDispatchResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return RequestDispatchResult{}, err
	}

	if len(batch) > 0 {
		h.dispatcher.NotifyBatch(ctx, o, batch)
	}

	return RequestDispatchResult{BatchSent: len(batch) > 0}, nil
}
