package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetEnterpriseOrdersQueryHandler lists a sender's orders.
type GetEnterpriseOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetEnterpriseOrdersQueryHandler creates a handler for sender
// order-history lookups.
func NewGetEnterpriseOrdersQueryHandler(db *gorm.DB) GetEnterpriseOrdersQueryHandler {
	return GetEnterpriseOrdersQueryHandler{db: db}
}

// Handle returns every order the sender created, newest first.
func (h GetEnterpriseOrdersQueryHandler) Handle(ctx context.Context, query GetEnterpriseOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return scanOrderList(ctx, h.db, `
		SELECT `+orderListColumns+`
		FROM orders
		WHERE sender_id = ?
		ORDER BY created_at DESC
	`, query.SenderID())
}
