package commands_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/domain/model/enterprise"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/ports"
	"smartdelivery/internal/pkg/errs"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d := approvedDriver(t, "driver-token")
	now := time.Now().UTC()
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{d.ID()}, timePtr(now), timePtr(now))
	sender := &enterprise.Enterprise{ID: o.SenderID(), Name: "Acme", FCMToken: "sender-token"}

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	enterpriseRepo := new(MockEnterpriseRepository)
	uow := new(MockUnitOfWork)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("EnterpriseRepository").Return(enterpriseRepo)
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	enterpriseRepo.On("Get", ctx, o.SenderID()).Return(sender, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	notifier.On("Send", ctx, []string{"sender-token"}, "Driver assigned",
		mock.AnythingOfType("string"), mock.Anything).
		Return(ports.SendReport{SuccessCount: 1}, nil).Once()

	handler := commands.NewAcceptOrderCommandHandler(factoryFor(uow), notifier, testLogger())
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), d.ID())
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.StatusAssigned, o.Status())
	assert.True(t, o.IsAssignedTo(d.ID()))
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_OrderAlreadyTaken(t *testing.T) {
	ctx := t.Context()
	d := approvedDriver(t, "")
	winner := uuid.New()
	now := time.Now().UTC()
	o := restoredOrder(t, order.StatusAssigned, order.Requirements{},
		&winner, []uuid.UUID{d.ID(), winner}, timePtr(now), timePtr(now))

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("OrderRepository").Return(orderRepo)
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	handler := commands.NewAcceptOrderCommandHandler(factoryFor(uow), new(MockNotifier), testLogger())
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), d.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotAvailable)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAcceptOrderCommandHandler_Handle_DriverNotNotified(t *testing.T) {
	ctx := t.Context()
	d := approvedDriver(t, "")
	now := time.Now().UTC()
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{uuid.New()}, timePtr(now), timePtr(now))

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("OrderRepository").Return(orderRepo)
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	handler := commands.NewAcceptOrderCommandHandler(factoryFor(uow), new(MockNotifier), testLogger())
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), d.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAcceptOrderCommandHandler_Handle_DriverBecameUnavailable(t *testing.T) {
	ctx := t.Context()
	d := approvedDriver(t, "")
	d.SetAvailability(false)
	now := time.Now().UTC()
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{d.ID()}, timePtr(now), timePtr(now))

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("OrderRepository").Return(orderRepo)
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	handler := commands.NewAcceptOrderCommandHandler(factoryFor(uow), new(MockNotifier), testLogger())
	cmd, err := commands.NewAcceptOrderCommand(o.ID(), d.ID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDriverNotAvailable)
	assert.Equal(t, order.StatusDispatching, o.Status())
}

func TestAcceptOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	handler := commands.NewAcceptOrderCommandHandler(factoryFor(new(MockUnitOfWork)), new(MockNotifier), testLogger())

	err := handler.Handle(t.Context(), commands.AcceptOrderCommand{})

	require.Error(t, err)
}
