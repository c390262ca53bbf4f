package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler lists accept-eligible orders for a driver.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for available-order
// lookups.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle returns dispatching orders whose notified set includes the driver.
// Membership in any past batch qualifies, not only the current one.
func (h GetAvailableOrdersQueryHandler) Handle(ctx context.Context, query GetAvailableOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderList(ctx, h.db, `
		SELECT `+orderListColumns+`
		FROM orders
		WHERE status = 'dispatching' AND ? = ANY(dispatched_drivers)
		ORDER BY created_at DESC
	`, query.DriverID().String())
}
