package queries

import (
	"errors"

	"github.com/google/uuid"
)

// ErrGetAvailableOrdersQueryIsNotConstructed is returned when a
// GetAvailableOrdersQuery was not created via its constructor.
var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists the dispatching orders a driver can still
// accept: every order that ever notified them and has no driver yet.
type GetAvailableOrdersQuery struct {
	driverID uuid.UUID

	isConstructed bool
}

// NewGetAvailableOrdersQuery creates an available-orders lookup for a driver.
func NewGetAvailableOrdersQuery(driverID uuid.UUID) (GetAvailableOrdersQuery, error) {
	if driverID == uuid.Nil {
		return GetAvailableOrdersQuery{}, errors.New("driverID is required")
	}
	return GetAvailableOrdersQuery{driverID: driverID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetAvailableOrdersQueryIsNotConstructed
	}
	return nil
}

// DriverID returns the asking driver.
func (q GetAvailableOrdersQuery) DriverID() uuid.UUID { return q.driverID }
