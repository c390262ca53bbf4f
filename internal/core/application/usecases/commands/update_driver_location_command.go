package commands

import (
	"errors"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/kernel"
)

// ErrUpdateDriverLocationCommandIsNotConstructed is returned when an
// UpdateDriverLocationCommand was not created via its constructor.
var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand records a driver's current position, the input
// to proximity ranking on the next batch selection.
type UpdateDriverLocationCommand struct {
	driverID uuid.UUID
	location kernel.GeoPoint

	isConstructed bool
}

// NewUpdateDriverLocationCommand creates a location update.
func NewUpdateDriverLocationCommand(driverID uuid.UUID, location kernel.GeoPoint) (UpdateDriverLocationCommand, error) {
	if driverID == uuid.Nil {
		return UpdateDriverLocationCommand{}, errors.New("driverID is required")
	}
	if location.IsZero() {
		return UpdateDriverLocationCommand{}, errors.New("location is required")
	}
	return UpdateDriverLocationCommand{driverID: driverID, location: location, isConstructed: true}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverLocationCommand) Validate() error {
	if !c.isConstructed {
		return ErrUpdateDriverLocationCommandIsNotConstructed
	}
	return nil
}

// DriverID returns the moving driver.
func (c UpdateDriverLocationCommand) DriverID() uuid.UUID { return c.driverID }

// Location returns the reported position.
func (c UpdateDriverLocationCommand) Location() kernel.GeoPoint { return c.location }
