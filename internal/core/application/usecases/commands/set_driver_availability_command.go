package commands

import (
	"errors"

	"github.com/google/uuid"
)

// ErrSetDriverAvailabilityCommandIsNotConstructed is returned when a
// SetDriverAvailabilityCommand was not created via its constructor.
var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand lets a driver go on or off duty. Off-duty
// drivers are excluded from every batch selection.
type SetDriverAvailabilityCommand struct {
	driverID  uuid.UUID
	available bool

	isConstructed bool
}

// NewSetDriverAvailabilityCommand creates an availability toggle.
func NewSetDriverAvailabilityCommand(driverID uuid.UUID, available bool) (SetDriverAvailabilityCommand, error) {
	if driverID == uuid.Nil {
		return SetDriverAvailabilityCommand{}, errors.New("driverID is required")
	}
	return SetDriverAvailabilityCommand{driverID: driverID, available: available, isConstructed: true}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverAvailabilityCommand) Validate() error {
	if !c.isConstructed {
		return ErrSetDriverAvailabilityCommandIsNotConstructed
	}
	return nil
}

// DriverID returns the toggling driver.
func (c SetDriverAvailabilityCommand) DriverID() uuid.UUID { return c.driverID }

// Available returns the requested duty state.
func (c SetDriverAvailabilityCommand) Available() bool { return c.available }
