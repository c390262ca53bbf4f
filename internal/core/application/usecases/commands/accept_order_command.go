package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrAcceptOrderCommandIsNotConstructed is returned when an
// AcceptOrderCommand was not created via its constructor.
var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a driver's claim on a dispatching order.
type AcceptOrderCommand struct {
	orderID  uuid.UUID
	driverID uuid.UUID

	isConstructed bool
}

// NewAcceptOrderCommand creates an acceptance claim for the given order and
// driver.
func NewAcceptOrderCommand(orderID, driverID uuid.UUID) (AcceptOrderCommand, error) {
	if orderID == uuid.Nil {
		return AcceptOrderCommand{}, errors.New("orderID is required")
	}
	if driverID == uuid.Nil {
		return AcceptOrderCommand{}, errors.New("driverID is required")
	}
	return AcceptOrderCommand{orderID: orderID, driverID: driverID, isConstructed: true}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrAcceptOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the claimed order.
func (c AcceptOrderCommand) OrderID() uuid.UUID { return c.orderID }

// DriverID returns the accepting driver.
func (c AcceptOrderCommand) DriverID() uuid.UUID { return c.driverID }
