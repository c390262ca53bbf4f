package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartdelivery/internal/core/domain/model/order"
)

func TestStatusValidate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.StatusDraft, order.StatusDispatching, order.StatusAssigned,
			order.StatusOnWay, order.StatusDelivered, order.StatusFailed,
			order.StatusCancelled,
		}
		for _, s := range statuses {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		err := order.Status("shipped").Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "shipped")
	})

	t.Run("should reject empty status", func(t *testing.T) {
		assert.Error(t, order.Status("").Validate())
	})
}

func TestStatusPredicates(t *testing.T) {
	t.Run("terminal statuses", func(t *testing.T) {
		assert.True(t, order.StatusDelivered.IsTerminal())
		assert.True(t, order.StatusFailed.IsTerminal())
		assert.True(t, order.StatusCancelled.IsTerminal())
		assert.False(t, order.StatusDraft.IsTerminal())
		assert.False(t, order.StatusDispatching.IsTerminal())
		assert.False(t, order.StatusAssigned.IsTerminal())
		assert.False(t, order.StatusOnWay.IsTerminal())
	})

	t.Run("dispatchable statuses", func(t *testing.T) {
		assert.True(t, order.StatusDraft.CanDispatch())
		assert.True(t, order.StatusDispatching.CanDispatch())
		assert.False(t, order.StatusAssigned.CanDispatch())
		assert.False(t, order.StatusOnWay.CanDispatch())
		assert.False(t, order.StatusDelivered.CanDispatch())
	})

	t.Run("cancellable statuses", func(t *testing.T) {
		assert.True(t, order.StatusDraft.CanCancel())
		assert.True(t, order.StatusDispatching.CanCancel())
		assert.True(t, order.StatusAssigned.CanCancel())
		assert.False(t, order.StatusOnWay.CanCancel())
		assert.False(t, order.StatusDelivered.CanCancel())
		assert.False(t, order.StatusCancelled.CanCancel())
	})

	t.Run("failable statuses", func(t *testing.T) {
		assert.True(t, order.StatusAssigned.CanFail())
		assert.True(t, order.StatusOnWay.CanFail())
		assert.False(t, order.StatusDraft.CanFail())
		assert.False(t, order.StatusDispatching.CanFail())
		assert.False(t, order.StatusFailed.CanFail())
	})
}
