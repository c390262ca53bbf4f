package queries

import (
	"errors"

	"github.com/google/uuid"
)

// ErrGetDriverOrdersQueryIsNotConstructed is returned when a
// GetDriverOrdersQuery was not created via its constructor.
var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery lists every order currently or previously assigned to
// a driver.
type GetDriverOrdersQuery struct {
	driverID uuid.UUID

	isConstructed bool
}

// NewGetDriverOrdersQuery creates a driver order-history lookup.
func NewGetDriverOrdersQuery(driverID uuid.UUID) (GetDriverOrdersQuery, error) {
	if driverID == uuid.Nil {
		return GetDriverOrdersQuery{}, errors.New("driverID is required")
	}
	return GetDriverOrdersQuery{driverID: driverID, isConstructed: true}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverOrdersQuery) Validate() error {
	if !q.isConstructed {
		return ErrGetDriverOrdersQueryIsNotConstructed
	}
	return nil
}

// DriverID returns the asking driver.
func (q GetDriverOrdersQuery) DriverID() uuid.UUID { return q.driverID }
