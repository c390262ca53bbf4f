package commands

import (
	"context"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/driver"
)

// RegisterDriverCommandHandler enrolls new drivers in pending review status.
type RegisterDriverCommandHandler struct {
	uowFactory UoWFactory
}

// NewRegisterDriverCommandHandler creates a handler for driver enrollments.
func NewRegisterDriverCommandHandler(uowFactory UoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{uowFactory: uowFactory}
}

// Handle persists the new driver and returns their identifier.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (uuid.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return uuid.Nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return uuid.Nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := driver.NewDriver(
		uuid.New(),
		cmd.Name(),
		cmd.Phone(),
		cmd.Email(),
		cmd.NNI(),
		cmd.VehicleType(),
		cmd.Sectors(),
		cmd.PasswordHash(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	if err := uow.DriverRepository().Add(ctx, d); err != nil {
		return uuid.Nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return d.ID(), nil
}
