package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrCancelOrderCommandIsNotConstructed is returned when a
// CancelOrderCommand was not created via its constructor.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order before any driver picked it up.
// ActorSenderID is optional: when set, the handler verifies the order belongs
// to that sender; the timeout sweep cancels with it unset.
type CancelOrderCommand struct {
	orderID       uuid.UUID
	actorSenderID uuid.UUID
	reason        string

	isConstructed bool
}

// NewCancelOrderCommand creates a cancellation. Pass uuid.Nil as
// actorSenderID for system-initiated cancellations.
func NewCancelOrderCommand(orderID, actorSenderID uuid.UUID, reason string) (CancelOrderCommand, error) {
	if orderID == uuid.Nil {
		return CancelOrderCommand{}, errors.New("orderID is required")
	}
	if reason == "" {
		return CancelOrderCommand{}, errors.New("reason is required")
	}
	return CancelOrderCommand{
		orderID:       orderID,
		actorSenderID: actorSenderID,
		reason:        reason,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	if !c.isConstructed {
		return ErrCancelOrderCommandIsNotConstructed
	}
	return nil
}

// OrderID returns the order being cancelled.
func (c CancelOrderCommand) OrderID() uuid.UUID { return c.orderID }

// ActorSenderID returns the acting sender, or uuid.Nil for system calls.
func (c CancelOrderCommand) ActorSenderID() uuid.UUID { return c.actorSenderID }

// Reason returns the cancellation reason.
func (c CancelOrderCommand) Reason() string { return c.reason }
