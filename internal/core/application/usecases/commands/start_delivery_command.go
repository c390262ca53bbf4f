package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrStartDeliveryCommandIsNotConstructed is returned when a
// StartDeliveryCommand was not created via its constructor.
var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand marks that the assigned driver picked up the package
// and is on the way to the receiver.
type StartDeliveryCommand struct {
	orderID  uuid.UUID
	driverID uuid.UUID

	isConstructed bool
}

// NewStartDeliveryCommand creates a start-delivery command.
func NewStartDeliveryCommand(orderID, driverID uuid.UUID) (StartDeliveryCommand, error) {
	if orderID == uuid.Nil {
		return StartDeliveryCommand{}, errors.New("orderID is required")
	}
	if driverID == uuid.Nil {
		return StartDeliveryCommand{}, errors.New("driverID is required")
	}
	return StartDeliveryCommand{orderID: orderID, driverID: driverID, isConstructed: true}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	if !c.isConstructed {
		return ErrStartDeliveryCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being picked up.
func (c StartDeliveryCommand) OrderID() uuid.UUID { return c.orderID }

// DriverID returns the acting driver.
func (c StartDeliveryCommand) DriverID() uuid.UUID { return c.driverID }
