package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrFailDeliveryCommandIsNotConstructed is returned when a
// FailDeliveryCommand was not created via its constructor.
var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

// FailDeliveryCommand is the assigned driver reporting that the delivery
// cannot be completed.
type FailDeliveryCommand struct {
	orderID  uuid.UUID
	driverID uuid.UUID
	reason   string

	isConstructed bool
}

// NewFailDeliveryCommand creates a failure report. A reason is mandatory.
func NewFailDeliveryCommand(orderID, driverID uuid.UUID, reason string) (FailDeliveryCommand, error) {
	if orderID == uuid.Nil {
		return FailDeliveryCommand{}, errors.New("orderID is required")
	}
	if driverID == uuid.Nil {
		return FailDeliveryCommand{}, errors.New("driverID is required")
	}
	if reason == "" {
		return FailDeliveryCommand{}, errors.New("reason is required")
	}
	return FailDeliveryCommand{
		orderID:       orderID,
		driverID:      driverID,
		reason:        reason,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailDeliveryCommand) Validate() error {
	if !c.isConstructed {
		return ErrFailDeliveryCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the failed order.
func (c FailDeliveryCommand) OrderID() uuid.UUID { return c.orderID }

// DriverID returns the reporting driver.
func (c FailDeliveryCommand) DriverID() uuid.UUID { return c.driverID }

// Reason returns the failure reason.
func (c FailDeliveryCommand) Reason() string { return c.reason }
