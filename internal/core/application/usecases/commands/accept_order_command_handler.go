package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/ports"
	"smartdelivery/internal/pkg/errs"
)

// AcceptOrderCommandHandler resolves the race between drivers answering the
// same notification batch: the first accept to lock the order row wins, every
// later one sees the order out of dispatching and gets ErrOrderNotAvailable.
// Any driver ever notified for this order may accept, not only the current
// batch.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for driver acceptances.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, logger *slog.Logger) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "accept_order"),
	}
}

// Handle assigns the order to the accepting driver if the claim is valid.
// The winning accept flips the order to assigned and, once the transaction
// is committed, pushes an assignment notification to the sender.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	d, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status() != order.StatusDispatching {
		return ErrOrderNotAvailable
	}
	if !o.WasNotified(d.ID()) {
		return errs.NewNotAuthorizedError(
			fmt.Sprintf("driver %s was not notified for order %s", d.ID(), o.ID()))
	}
	if !d.IsDispatchable() {
		return ErrDriverNotAvailable
	}

	if err := o.Assign(d.ID()); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	// Resolve the sender token before the transaction closes; the push
	// itself goes out only once the assignment is durable.
	senderToken := h.senderToken(ctx, uow, o)

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifySender(ctx, o, senderToken, d.Name(), d.Phone())
	return nil
}

func (h AcceptOrderCommandHandler) senderToken(ctx context.Context, uow UoW, o *order.Order) string {
	sender, err := uow.EnterpriseRepository().Get(ctx, o.SenderID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "sender lookup for assignment notification failed",
				"order", o.ID(), "error", err)
		}
		return ""
	}
	return sender.FCMToken
}

// notifySender tells the sender which driver took the order. Failures are
// logged, the acceptance already stands.
func (h AcceptOrderCommandHandler) notifySender(ctx context.Context, o *order.Order, token, driverName, driverPhone string) {
	if token == "" {
		return
	}

	data := orderNotificationData(o, "order_assigned")
	data["driver_name"] = driverName
	data["driver_phone"] = driverPhone

	title := "Driver assigned"
	body := fmt.Sprintf("%s accepted order %s", driverName, o.Reference())
	if _, err := h.notifier.Send(ctx, []string{token}, title, body, data); err != nil {
		h.logger.WarnContext(ctx, "assignment notification failed", "order", o.ID(), "error", err)
	}
}
