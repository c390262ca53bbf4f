package commands

import (
	"errors"

	"smartdelivery/internal/core/domain/model/driver"
)

// ErrRegisterDriverCommandIsNotConstructed is returned when a
// RegisterDriverCommand was not created via its constructor.
var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand enrolls a new driver. Registration lands in pending
// review; the driver cannot receive orders until approved.
type RegisterDriverCommand struct {
	name         string
	phone        string
	email        string
	nni          string
	vehicleType  driver.VehicleType
	sectors      []string
	passwordHash string

	isConstructed bool
}

// NewRegisterDriverCommand creates a driver enrollment.
func NewRegisterDriverCommand(
	name, phone, email, nni string,
	vehicleType driver.VehicleType,
	sectors []string,
	passwordHash string,
) (RegisterDriverCommand, error) {
	if name == "" {
		return RegisterDriverCommand{}, errors.New("name is required")
	}
	if phone == "" {
		return RegisterDriverCommand{}, errors.New("phone is required")
	}
	if email == "" {
		return RegisterDriverCommand{}, errors.New("email is required")
	}
	if err := vehicleType.Validate(); err != nil {
		return RegisterDriverCommand{}, err
	}
	return RegisterDriverCommand{
		name:          name,
		phone:         phone,
		email:         email,
		nni:           nni,
		vehicleType:   vehicleType,
		sectors:       append([]string(nil), sectors...),
		passwordHash:  passwordHash,
		isConstructed: true,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	if !c.isConstructed {
		return ErrRegisterDriverCommandIsNotConstructed
	}
	return nil
}

func (c RegisterDriverCommand) Name() string                    { return c.name }
func (c RegisterDriverCommand) Phone() string                   { return c.phone }
func (c RegisterDriverCommand) Email() string                   { return c.email }
func (c RegisterDriverCommand) NNI() string                     { return c.nni }
func (c RegisterDriverCommand) VehicleType() driver.VehicleType { return c.vehicleType }
func (c RegisterDriverCommand) PasswordHash() string            { return c.passwordHash }

func (c RegisterDriverCommand) Sectors() []string {
	return append([]string(nil), c.sectors...)
}
