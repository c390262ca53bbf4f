package commands

import "errors"

// ErrProcessDispatchTimeoutsCommandIsNotConstructed is returned when a
// ProcessDispatchTimeoutsCommand was not created via its constructor.
var ErrProcessDispatchTimeoutsCommandIsNotConstructed = errors.New(
	"ProcessDispatchTimeoutsCommand must be created via NewProcessDispatchTimeoutsCommand constructor",
)

// ProcessDispatchTimeoutsCommand triggers one sweep over all dispatching
// orders whose batch window expired. The scheduler runs it periodically.
type ProcessDispatchTimeoutsCommand struct {
	isConstructed bool
}

// NewProcessDispatchTimeoutsCommand creates a sweep trigger.
func NewProcessDispatchTimeoutsCommand() ProcessDispatchTimeoutsCommand {
	return ProcessDispatchTimeoutsCommand{isConstructed: true}
}

// Validate ensures the command was created through the constructor.
func (c ProcessDispatchTimeoutsCommand) Validate() error {
	if !c.isConstructed {
		return ErrProcessDispatchTimeoutsCommandIsNotConstructed
	}
	return nil
}
