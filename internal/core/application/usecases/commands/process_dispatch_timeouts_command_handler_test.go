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
)

var sweepNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sweepHandler(uow *MockUnitOfWork, notifier ports.Notifier) commands.ProcessDispatchTimeoutsCommandHandler {
	dispatcher := commands.NewBatchDispatcher(notifier, testLogger(), func() time.Time { return sweepNow })
	return commands.NewProcessDispatchTimeoutsCommandHandler(factoryFor(uow), dispatcher, testLogger())
}

func TestProcessDispatchTimeouts_Handle_EscalatesToNextBatch(t *testing.T) {
	ctx := t.Context()
	notified := uuid.New()
	// Batch window expired 5s ago, global timeout still far away.
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{notified},
		timePtr(sweepNow.Add(-35*time.Second)), timePtr(sweepNow.Add(-35*time.Second)))
	fresh := approvedDriver(t, "fresh-token")

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	sectorRepo := new(MockSectorRuleRepository)
	uow := new(MockUnitOfWork)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("SectorRuleRepository").Return(sectorRepo)
	orderRepo.On("GetDispatchingOlderThan", ctx, sweepNow.Add(-commands.BatchWindow)).
		Return([]*order.Order{o}, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	sectorRepo.On("GetByType", ctx, "standard").Return(sector.DefaultRule("standard"), nil).Once()
	driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{fresh}, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	notifier.On("Send", ctx, []string{"fresh-token"}, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.SendReport{SuccessCount: 1}, nil).Once()

	handler := sweepHandler(uow, notifier)
	result, err := handler.Handle(ctx, commands.NewProcessDispatchTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Escalated)
	assert.Equal(t, 0, result.Cancelled)
	assert.True(t, o.WasNotified(fresh.ID()))
	assert.Equal(t, sweepNow, *o.DispatchStartTime(), "batch window restarted")
	notifier.AssertExpectations(t)
}

func TestProcessDispatchTimeouts_Handle_CancelsAfterGlobalTimeout(t *testing.T) {
	ctx := t.Context()
	notified := uuid.New()
	// First batch went out 4 minutes ago: over the 3-minute global timeout.
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{notified},
		timePtr(sweepNow.Add(-40*time.Second)), timePtr(sweepNow.Add(-4*time.Minute)))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetDispatchingOlderThan", ctx, mock.Anything).Return([]*order.Order{o}, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()

	handler := sweepHandler(uow, new(MockNotifier))
	result, err := handler.Handle(ctx, commands.NewProcessDispatchTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Cancelled)
	assert.Equal(t, order.StatusCancelled, o.Status())
	assert.Equal(t, commands.TimeoutCancelReason, o.CancelReason())
}

func TestProcessDispatchTimeouts_Handle_SkipsConcurrentlyAcceptedOrder(t *testing.T) {
	ctx := t.Context()
	winner := uuid.New()
	// Listed as expired, but a driver accepted between listing and locking.
	o := restoredOrder(t, order.StatusAssigned, order.Requirements{},
		&winner, []uuid.UUID{winner},
		timePtr(sweepNow.Add(-40*time.Second)), timePtr(sweepNow.Add(-40*time.Second)))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetDispatchingOlderThan", ctx, mock.Anything).Return([]*order.Order{o}, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	handler := sweepHandler(uow, new(MockNotifier))
	result, err := handler.Handle(ctx, commands.NewProcessDispatchTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, commands.ProcessTimeoutsResult{}, result)
	assert.Equal(t, order.StatusAssigned, o.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, o)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestProcessDispatchTimeouts_Handle_ExhaustedPoolWaitsForGlobalTimeout(t *testing.T) {
	ctx := t.Context()
	notified := uuid.New()
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{notified},
		timePtr(sweepNow.Add(-35*time.Second)), timePtr(sweepNow.Add(-35*time.Second)))

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	sectorRepo := new(MockSectorRuleRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("SectorRuleRepository").Return(sectorRepo)
	orderRepo.On("GetDispatchingOlderThan", ctx, mock.Anything).Return([]*order.Order{o}, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	sectorRepo.On("GetByType", ctx, "standard").Return(sector.DefaultRule("standard"), nil).Once()
	driverRepo.On("GetAllDispatchable", ctx).Return([]*driver.Driver{}, nil).Once()

	handler := sweepHandler(uow, new(MockNotifier))
	result, err := handler.Handle(ctx, commands.NewProcessDispatchTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Exhausted)
	assert.Equal(t, order.StatusDispatching, o.Status(), "order keeps waiting for the global timeout")
}

func TestProcessDispatchTimeouts_Handle_WindowNotExpiredAfterRecheck(t *testing.T) {
	ctx := t.Context()
	notified := uuid.New()
	// Re-read under lock shows a fresh batch: another sweep or a manual
	// dispatch already advanced this order.
	o := restoredOrder(t, order.StatusDispatching, order.Requirements{},
		nil, []uuid.UUID{notified},
		timePtr(sweepNow.Add(-5*time.Second)), timePtr(sweepNow.Add(-time.Minute)))

	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetDispatchingOlderThan", ctx, mock.Anything).Return([]*order.Order{o}, nil).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	handler := sweepHandler(uow, new(MockNotifier))
	result, err := handler.Handle(ctx, commands.NewProcessDispatchTimeoutsCommand())

	require.NoError(t, err)
	assert.Equal(t, commands.ProcessTimeoutsResult{}, result)
	uow.AssertNotCalled(t, "Commit", ctx)
}
