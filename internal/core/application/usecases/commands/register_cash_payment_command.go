package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrRegisterCashPaymentCommandIsNotConstructed is returned when a
// RegisterCashPaymentCommand was not created via its constructor.
var ErrRegisterCashPaymentCommandIsNotConstructed = errors.New(
	"RegisterCashPaymentCommand must be created via NewRegisterCashPaymentCommand constructor",
)

// RegisterCashPaymentCommand records the cash collected on delivery against
// the order's invoice.
type RegisterCashPaymentCommand struct {
	orderID uuid.UUID

	isConstructed bool
}

// NewRegisterCashPaymentCommand creates a cash payment registration.
func NewRegisterCashPaymentCommand(orderID uuid.UUID) (RegisterCashPaymentCommand, error) {
	if orderID == uuid.Nil {
		return RegisterCashPaymentCommand{}, errors.New("orderID is required")
	}
	return RegisterCashPaymentCommand{orderID: orderID, isConstructed: true}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCashPaymentCommand) Validate() error {
	if !c.isConstructed {
		return ErrRegisterCashPaymentCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the paid order.
func (c RegisterCashPaymentCommand) OrderID() uuid.UUID { return c.orderID }
