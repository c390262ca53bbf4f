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

// FailDeliveryCommandHandler records a failed delivery attempt reported by
// the assigned driver and notifies the sender.
type FailDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewFailDeliveryCommandHandler creates a handler for failure reports.
func NewFailDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, logger *slog.Logger) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "fail_delivery"),
	}
}

// Handle moves the order to failed with the driver's reason. Only the
// assigned driver may fail the order, and only while it is assigned or
// on the way.
func (h FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
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

	if err := o.Fail(cmd.DriverID(), cmd.Reason()); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	senderToken := h.senderToken(ctx, uow, o)

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyFailed(ctx, o, senderToken, cmd.Reason())
	return nil
}

func (h FailDeliveryCommandHandler) senderToken(ctx context.Context, uow UoW, o *order.Order) string {
	sender, err := uow.EnterpriseRepository().Get(ctx, o.SenderID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "sender lookup for failure notification failed",
				"order", o.ID(), "error", err)
		}
		return ""
	}
	return sender.FCMToken
}

func (h FailDeliveryCommandHandler) notifyFailed(ctx context.Context, o *order.Order, token, reason string) {
	if token == "" {
		return
	}

	data := orderNotificationData(o, "order_failed")
	data["reason"] = reason

	title := "Delivery failed"
	body := fmt.Sprintf("Order %s could not be delivered: %s", o.Reference(), reason)
	if _, err := h.notifier.Send(ctx, []string{token}, title, body, data); err != nil {
		h.logger.WarnContext(ctx, "failure notification failed", "order", o.ID(), "error", err)
	}
}
