// Package driver holds the driver ("livreur") aggregate. Drivers are owned
// by the registration and approval workflow; the dispatch core only reads
// their availability, verification, location and sector capabilities.
package driver

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/errs"
)

// ErrDriverIsNotConstructed is returned when a Driver instance was not
// created through NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")

// VehicleType classifies the vehicle a driver operates.
type VehicleType string

const (
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleCar        VehicleType = "car"
	VehicleBicycle    VehicleType = "bicycle"
	VehicleTruck      VehicleType = "truck"
)

// Validate checks the vehicle type against the known set.
func (v VehicleType) Validate() error {
	switch v {
	case VehicleMotorcycle, VehicleCar, VehicleBicycle, VehicleTruck:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("%q is not a valid vehicle type", string(v)))
	}
}

// RegistrationStatus tracks the approval workflow of a driver account.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// Driver is the delivery-person aggregate. A driver is eligible for dispatch
// only while available and verified; both flags are toggled by the approval
// workflow and by the driver's own availability switch.
type Driver struct {
	id    uuid.UUID
	name  string
	phone string
	email string
	nni   string

	vehicleType VehicleType
	sectors     []string

	registrationStatus RegistrationStatus
	rejectionReason    string

	availability bool
	verified     bool
	rating       float64

	location kernel.GeoPoint
	fcmToken string

	passwordHash string

	isConstructed bool
}

// NewDriver registers a driver in pending status. Newly registered drivers
// are neither verified nor available until approved.
func NewDriver(id uuid.UUID, name, phone, email, nni string, vehicleType VehicleType, sectors []string, passwordHash string) (*Driver, error) {
	if id == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}
	if nni == "" {
		return nil, errs.NewValueIsRequiredError("nni")
	}
	if err := vehicleType.Validate(); err != nil {
		return nil, err
	}

	return &Driver{
		id:                 id,
		name:               name,
		phone:              phone,
		email:              email,
		nni:                nni,
		vehicleType:        vehicleType,
		sectors:            sectors,
		registrationStatus: RegistrationPending,
		passwordHash:       passwordHash,
		isConstructed:      true,
	}, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(
	id uuid.UUID,
	name, phone, email, nni string,
	vehicleType VehicleType,
	sectors []string,
	registrationStatus RegistrationStatus,
	rejectionReason string,
	availability, verified bool,
	rating float64,
	location kernel.GeoPoint,
	fcmToken string,
	passwordHash string,
) *Driver {
	return &Driver{
		id:                 id,
		name:               name,
		phone:              phone,
		email:              email,
		nni:                nni,
		vehicleType:        vehicleType,
		sectors:            sectors,
		registrationStatus: registrationStatus,
		rejectionReason:    rejectionReason,
		availability:       availability,
		verified:           verified,
		rating:             rating,
		location:           location,
		fcmToken:           fcmToken,
		passwordHash:       passwordHash,
		isConstructed:      true,
	}
}

// Validate ensures the driver was constructed through NewDriver or
// RestoreDriver.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

func (d *Driver) ID() uuid.UUID                          { return d.id }
func (d *Driver) Name() string                           { return d.name }
func (d *Driver) Phone() string                          { return d.phone }
func (d *Driver) Email() string                          { return d.email }
func (d *Driver) NNI() string                            { return d.nni }
func (d *Driver) VehicleType() VehicleType               { return d.vehicleType }
func (d *Driver) RegistrationStatus() RegistrationStatus { return d.registrationStatus }
func (d *Driver) RejectionReason() string                { return d.rejectionReason }
func (d *Driver) Availability() bool                     { return d.availability }
func (d *Driver) Verified() bool                         { return d.verified }
func (d *Driver) Rating() float64                        { return d.rating }
func (d *Driver) Location() kernel.GeoPoint              { return d.location }
func (d *Driver) FCMToken() string                       { return d.fcmToken }
func (d *Driver) PasswordHash() string                   { return d.passwordHash }

// Sectors returns the sector types this driver can handle.
func (d *Driver) Sectors() []string {
	out := make([]string, len(d.sectors))
	copy(out, d.sectors)
	return out
}

// HandlesSector reports whether the driver covers the given sector type.
func (d *Driver) HandlesSector(sectorType string) bool {
	for _, s := range d.sectors {
		if s == sectorType {
			return true
		}
	}
	return false
}

// IsDispatchable reports whether the driver may receive dispatch
// notifications and accept orders right now.
func (d *Driver) IsDispatchable() bool {
	return d.availability && d.verified
}

// Approve moves a pending registration to approved, enabling the account for
// dispatch.
func (d *Driver) Approve() error {
	if d.registrationStatus != RegistrationPending {
		return errs.NewInvalidStateError("approve registration", string(d.registrationStatus))
	}
	d.registrationStatus = RegistrationApproved
	d.verified = true
	d.availability = true
	d.rejectionReason = ""
	return nil
}

// Reject declines a pending registration with the given reason and disables
// the account.
func (d *Driver) Reject(reason string) error {
	if d.registrationStatus != RegistrationPending {
		return errs.NewInvalidStateError("reject registration", string(d.registrationStatus))
	}
	d.registrationStatus = RegistrationRejected
	d.rejectionReason = reason
	d.verified = false
	d.availability = false
	return nil
}

// SetAvailability toggles the driver's own availability switch.
func (d *Driver) SetAvailability(available bool) {
	d.availability = available
}

// MoveTo updates the driver's last reported location.
func (d *Driver) MoveTo(location kernel.GeoPoint) {
	d.location = location
}

// SetFCMToken updates the push-notification address. An empty token removes
// the driver from notification fan-outs without affecting eligibility.
func (d *Driver) SetFCMToken(token string) {
	d.fcmToken = token
}

// SetRating records the driver's aggregated rating.
func (d *Driver) SetRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			fmt.Errorf("%v is not within [0, 5]", rating))
	}
	d.rating = rating
	return nil
}
