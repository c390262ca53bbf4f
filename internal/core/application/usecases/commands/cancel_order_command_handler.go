package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"smartdelivery/internal/pkg/errs"
)

// CancelOrderCommandHandler withdraws an order that has not reached on_way.
// Drivers already notified are not told about the withdrawal; their accept
// attempts will simply find the order unavailable.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle cancels the order, clearing any assigned driver and batch state.
// When the command carries an acting sender, the order must belong to them.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if actor := cmd.ActorSenderID(); actor != uuid.Nil && actor != o.SenderID() {
		return errs.NewNotAuthorizedError(
			fmt.Sprintf("order %s does not belong to sender %s", o.ID(), actor))
	}

	if err := o.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
