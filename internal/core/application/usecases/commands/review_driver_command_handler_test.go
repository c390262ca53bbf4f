package commands_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/pkg/errs"
)

func pendingDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(
		uuid.New(), "Moussa", "+22230000000", "moussa@example.com", "1234567890",
		driver.VehicleMotorcycle, []string{"standard"}, "hash",
	)
	require.NoError(t, err)
	return d
}

func TestReviewDriverCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	d := pendingDriver(t)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	driverRepo.On("Update", ctx, d).Return(nil).Once()

	handler := commands.NewReviewDriverCommandHandler(factoryFor(uow))
	cmd, err := commands.NewReviewDriverCommand(d.ID(), commands.ReviewApprove, "")
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, d.IsDispatchable(), "approval verifies the driver and makes them available")
}

func TestReviewDriverCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	d := pendingDriver(t)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	driverRepo.On("Update", ctx, d).Return(nil).Once()

	handler := commands.NewReviewDriverCommandHandler(factoryFor(uow))
	cmd, err := commands.NewReviewDriverCommand(d.ID(), commands.ReviewReject, "documents unreadable")
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, d.IsDispatchable())
}

func TestReviewDriverCommandHandler_Handle_AlreadyReviewed(t *testing.T) {
	ctx := t.Context()
	d := pendingDriver(t)
	require.NoError(t, d.Approve())

	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()

	handler := commands.NewReviewDriverCommandHandler(factoryFor(uow))
	cmd, err := commands.NewReviewDriverCommand(d.ID(), commands.ReviewApprove, "")
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReviewDriverCommandHandler_Handle_RejectNeedsReason(t *testing.T) {
	_, err := commands.NewReviewDriverCommand(uuid.New(), commands.ReviewReject, "")
	require.Error(t, err)
}
