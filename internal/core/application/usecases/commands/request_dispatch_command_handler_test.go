package commands_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/model/sector"
	"smartdelivery/internal/core/ports"
	"smartdelivery/internal/pkg/errs"
)

func dispatchTestHandler(uow *MockUnitOfWork, notifier ports.Notifier) commands.RequestDispatchCommandHandler {
	dispatcher := commands.NewBatchDispatcher(notifier, testLogger(), func() time.Time { return sweepNow })
	return commands.NewRequestDispatchCommandHandler(factoryFor(uow), dispatcher)
}

func TestRequestDispatchCommandHandler_Handle_SendsFirstBatch(t *testing.T) {
	ctx := t.Context()
	o := draftOrder(t, order.Requirements{})
	candidate := approvedDriver(t, "driver-token")

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	sectorRepo := new(MockSectorRuleRepository)
	uow := new(MockUnitOfWork)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("SectorRuleRepository").Return(sectorRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	sectorRepo.On("GetByType", ctx, "standard").Return(sector.DefaultRule("standard"), nil).Once()
	driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{candidate}, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	notifier.On("Send", ctx, []string{"driver-token"}, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.SendReport{SuccessCount: 1}, nil).Once()

	handler := dispatchTestHandler(uow, notifier)
	cmd, err := commands.NewRequestDispatchCommand(o.ID(), false)
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.BatchSent)
	assert.False(t, result.Confirmed)
	assert.Equal(t, order.StatusDispatching, o.Status())
	assert.True(t, o.WasNotified(candidate.ID()))
	notifier.AssertExpectations(t)
}

func TestRequestDispatchCommandHandler_Handle_ConfirmsPreAssignedDriver(t *testing.T) {
	ctx := t.Context()
	d := approvedDriver(t, "")
	id := d.ID()
	o := restoredOrder(t, order.StatusDraft, order.Requirements{}, &id, nil, nil, nil)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	driverRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()

	handler := dispatchTestHandler(uow, new(MockNotifier))
	cmd, err := commands.NewRequestDispatchCommand(o.ID(), false)
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Confirmed)
	assert.False(t, result.BatchSent)
	assert.Equal(t, order.StatusAssigned, o.Status())
	driverRepo.AssertNotCalled(t, "GetAllDispatchable", ctx)
}

func TestRequestDispatchCommandHandler_Handle_NoDriversAvailable(t *testing.T) {
	ctx := t.Context()
	o := draftOrder(t, order.Requirements{})

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	sectorRepo := new(MockSectorRuleRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("SectorRuleRepository").Return(sectorRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	sectorRepo.On("GetByType", ctx, "standard").Return(sector.DefaultRule("standard"), nil).Once()
	driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{}, nil).Once()

	handler := dispatchTestHandler(uow, new(MockNotifier))
	cmd, err := commands.NewRequestDispatchCommand(o.ID(), false)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoDriversAvailable)
	assert.Equal(t, order.StatusDraft, o.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRequestDispatchCommandHandler_Handle_ForceResetsAndRedispatches(t *testing.T) {
	ctx := t.Context()
	previous := uuid.New()
	now := time.Now().UTC()
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{previous}, timePtr(now), timePtr(now))
	candidate := approvedDriver(t, "driver-token")

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	sectorRepo := new(MockSectorRuleRepository)
	uow := new(MockUnitOfWork)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("SectorRuleRepository").Return(sectorRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	sectorRepo.On("GetByType", ctx, "standard").Return(sector.DefaultRule("standard"), nil).Once()
	driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{candidate}, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	notifier.On("Send", ctx, []string{"driver-token"}, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.SendReport{SuccessCount: 1}, nil).Once()

	handler := dispatchTestHandler(uow, notifier)
	cmd, err := commands.NewRequestDispatchCommand(o.ID(), true)
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.BatchSent)
	assert.False(t, o.WasNotified(previous), "force reset wipes the dispatch history")
	assert.True(t, o.WasNotified(candidate.ID()))
}

func TestRequestDispatchCommandHandler_Handle_CommitFailureSkipsNotification(t *testing.T) {
	ctx := t.Context()
	o := draftOrder(t, order.Requirements{})
	candidate := approvedDriver(t, "driver-token")

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	sectorRepo := new(MockSectorRuleRepository)
	uow := new(MockUnitOfWork)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(assert.AnError).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("SectorRuleRepository").Return(sectorRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	sectorRepo.On("GetByType", ctx, "standard").Return(sector.DefaultRule("standard"), nil).Once()
	driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{candidate}, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()

	handler := dispatchTestHandler(uow, notifier)
	cmd, err := commands.NewRequestDispatchCommand(o.ID(), false)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, assert.AnError)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestDispatchCommandHandler_Handle_RejectsTerminalOrder(t *testing.T) {
	ctx := t.Context()
	o := restoredOrder(t, order.StatusDelivered, order.Requirements{}, nil, nil, nil, nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	handler := dispatchTestHandler(uow, new(MockNotifier))
	cmd, err := commands.NewRequestDispatchCommand(o.ID(), false)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
}
