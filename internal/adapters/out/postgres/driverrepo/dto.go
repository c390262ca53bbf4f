// Package driverrepo maps the driver aggregate onto its relational
// representation. Sector subscriptions are stored as a postgres text array.
package driverrepo

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/kernel"
)

// DriverDTO is the database row for a driver aggregate. Availability and
// verification are indexed together for the dispatchable-pool query.
type DriverDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Phone string
	Email string `gorm:"uniqueIndex"`
	NNI   string

	VehicleType        string
	Sectors            pq.StringArray `gorm:"type:text[]"`
	RegistrationStatus string
	RejectionReason    string

	Availability bool `gorm:"index:idx_drivers_dispatchable"`
	Verified     bool `gorm:"index:idx_drivers_dispatchable"`
	Rating       float64

	LocationLat  float64
	LocationLong float64

	FCMToken     string
	PasswordHash string
}

// TableName overrides GORM's default to "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its row representation.
func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:                 d.ID(),
		Name:               d.Name(),
		Phone:              d.Phone(),
		Email:              d.Email(),
		NNI:                d.NNI(),
		VehicleType:        string(d.VehicleType()),
		Sectors:            pq.StringArray(d.Sectors()),
		RegistrationStatus: string(d.RegistrationStatus()),
		RejectionReason:    d.RejectionReason(),
		Availability:       d.Availability(),
		Verified:           d.Verified(),
		Rating:             d.Rating(),
		LocationLat:        d.Location().Latitude(),
		LocationLong:       d.Location().Longitude(),
		FCMToken:           d.FCMToken(),
		PasswordHash:       d.PasswordHash(),
	}
}

// toDomain reconstructs the aggregate from its row.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	location, err := kernel.NewGeoPoint(dto.LocationLat, dto.LocationLong)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(
		dto.ID,
		dto.Name,
		dto.Phone,
		dto.Email,
		dto.NNI,
		driver.VehicleType(dto.VehicleType),
		[]string(dto.Sectors),
		driver.RegistrationStatus(dto.RegistrationStatus),
		dto.RejectionReason,
		dto.Availability,
		dto.Verified,
		dto.Rating,
		location,
		dto.FCMToken,
		dto.PasswordHash,
	), nil
}
