package queries

import (
	"errors"

	"github.com/google/uuid"
)

// ErrGetEnterpriseOrdersQueryIsNotConstructed is returned when a
// GetEnterpriseOrdersQuery was not created via its constructor.
var ErrGetEnterpriseOrdersQueryIsNotConstructed = errors.New(
	"GetEnterpriseOrdersQuery must be created via NewGetEnterpriseOrdersQuery constructor",
)

// GetEnterpriseOrdersQuery lists every order created by a sender.
type GetEnterpriseOrdersQuery struct {
	senderID uuid.UUID

	isConstructed bool
}

// NewGetEnterpriseOrdersQuery creates a sender order-history lookup.
func NewGetEnterpriseOrdersQuery(senderID uuid.UUID) (GetEnterpriseOrdersQuery, error) {
	if senderID == uuid.Nil {
		return GetEnterpriseOrdersQuery{}, errors.New("senderID is required")
	}
	return GetEnterpriseOrdersQuery{senderID: senderID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEnterpriseOrdersQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetEnterpriseOrdersQueryIsNotConstructed
	}
	return nil
}

// SenderID returns the asking sender.
func (q GetEnterpriseOrdersQuery) SenderID() uuid.UUID { return q.senderID }
