package commands

import "context"

// StartDeliveryCommandHandler moves an assigned order to on_way when its
// driver reports pickup.
type StartDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewStartDeliveryCommandHandler creates a handler for pickup reports.
func NewStartDeliveryCommandHandler(uowFactory UoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle transitions the order to on_way. Only the assigned driver may do
// this, and only from assigned status.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	if err := o.StartDelivery(cmd.DriverID()); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
