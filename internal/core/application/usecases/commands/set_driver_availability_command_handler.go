package commands

import "context"

// SetDriverAvailabilityCommandHandler applies on/off duty toggles.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory UoWFactory
}

// NewSetDriverAvailabilityCommandHandler creates a handler for availability
// toggles.
func NewSetDriverAvailabilityCommandHandler(uowFactory UoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle stores the driver's duty state.
func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
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

	d.SetAvailability(cmd.Available())

	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
