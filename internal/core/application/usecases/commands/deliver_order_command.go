package commands

import (
	"errors"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/condition"
)

// ErrDeliverOrderCommandIsNotConstructed is returned when a
// DeliverOrderCommand was not created via its constructor.
var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand is the driver's delivery attempt: the order, the acting
// driver and the proof-of-delivery evidence bundle.
type DeliverOrderCommand struct {
	orderID  uuid.UUID
	driverID uuid.UUID
	evidence condition.Evidence

	isConstructed bool
}

// NewDeliverOrderCommand creates a delivery attempt. The evidence bundle may
// be partial; which pieces matter depends on the order's requirements.
func NewDeliverOrderCommand(orderID, driverID uuid.UUID, evidence condition.Evidence) (DeliverOrderCommand, error) {
	if orderID == uuid.Nil {
		return DeliverOrderCommand{}, errors.New("orderID is required")
	}
	if driverID == uuid.Nil {
		return DeliverOrderCommand{}, errors.New("driverID is required")
	}
	return DeliverOrderCommand{
		orderID:       orderID,
		driverID:      driverID,
		evidence:      evidence,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrDeliverOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being delivered.
func (c DeliverOrderCommand) OrderID() uuid.UUID { return c.orderID }

// DriverID returns the acting driver.
func (c DeliverOrderCommand) DriverID() uuid.UUID { return c.driverID }

// Evidence returns the submitted proof bundle.
func (c DeliverOrderCommand) Evidence() condition.Evidence { return c.evidence }
