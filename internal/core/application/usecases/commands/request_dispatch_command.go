package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrRequestDispatchCommandIsNotConstructed is returned when a
// RequestDispatchCommand was not created via its constructor.
var ErrRequestDispatchCommandIsNotConstructed = errors.New(
	"RequestDispatchCommand must be created via NewRequestDispatchCommand constructor",
)

// RequestDispatchCommand asks the engine to find a driver for an order.
// With force set, all dispatch bookkeeping is wiped first and the cycle
// restarts from scratch.
type RequestDispatchCommand struct {
	orderID uuid.UUID
	force   bool

	isConstructed bool
}

// NewRequestDispatchCommand creates a dispatch request for the given order.
func NewRequestDispatchCommand(orderID uuid.UUID, force bool) (RequestDispatchCommand, error) {
	if orderID == uuid.Nil {
		return RequestDispatchCommand{}, errors.New("orderID is required")
	}
	return RequestDispatchCommand{orderID: orderID, force: force, isConstructed: true}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestDispatchCommand) Validate() error {
	if !c.isConstructed {
		return ErrRequestDispatchCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order to dispatch.
func (c RequestDispatchCommand) OrderID() uuid.UUID { return c.orderID }

// Force reports whether the dispatch cycle should restart from scratch.
func (c RequestDispatchCommand) Force() bool { return c.force }
