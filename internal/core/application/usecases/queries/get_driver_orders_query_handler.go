package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDriverOrdersQueryHandler lists a driver's assigned orders.
type GetDriverOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverOrdersQueryHandler creates a handler for driver order-history
// lookups.
func NewGetDriverOrdersQueryHandler(db *gorm.DB) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{db: db}
}

// Handle returns every order bound to the driver, newest first.
func (h GetDriverOrdersQueryHandler) Handle(ctx context.Context, query GetDriverOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderList(ctx, h.db, `
		SELECT `+orderListColumns+`
		FROM orders
		WHERE assigned_driver_id = ?
		ORDER BY created_at DESC
	`, query.DriverID())
}
