package commands

import "context"

// UpdateDriverLocationCommandHandler persists driver position reports.
type UpdateDriverLocationCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateDriverLocationCommandHandler creates a handler for location
// updates.
func NewUpdateDriverLocationCommandHandler(uowFactory UoWFactory) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{uowFactory: uowFactory}
}

// Handle stores the driver's new position.
func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) error {
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

	d.MoveTo(cmd.Location())

	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
