// Package orderrepo maps the order aggregate onto its relational
// representation. Driver-ID sets are stored as postgres text arrays so the
// dispatch bookkeeping round-trips without join tables.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
)

// OrderDTO is the database row for an order aggregate. Status and the
// dispatch-start timestamp are indexed for the timeout sweep's listing query.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference   string    `gorm:"uniqueIndex"`
	ExternalRef string
	SectorType  string

	SenderID      uuid.UUID `gorm:"type:uuid;index"`
	SenderName    string
	ReceiverName  string
	ReceiverPhone string

	PickupLat  float64
	PickupLong float64
	DropLat    float64
	DropLong   float64
	DistanceKM float64

	AssignedDriverID *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"index:idx_orders_status_dispatch"`

	RequireOTP       bool
	RequireSignature bool
	RequirePhoto     bool
	RequireBiometric bool

	FailureReason string
	CancelReason  string

	BatchSize         int
	DispatchedDrivers pq.StringArray `gorm:"type:text[]"`
	CurrentBatch      pq.StringArray `gorm:"type:text[]"`
	DispatchStartTime *time.Time     `gorm:"index:idx_orders_status_dispatch"`
	FirstDispatchTime *time.Time

	CreatedAt time.Time
}

// TableName overrides GORM's default to "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its row representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                o.ID(),
		Reference:         o.Reference(),
		ExternalRef:       o.ExternalRef(),
		SectorType:        o.SectorType(),
		SenderID:          o.SenderID(),
		SenderName:        o.SenderName(),
		ReceiverName:      o.ReceiverName(),
		ReceiverPhone:     o.ReceiverPhone(),
		PickupLat:         o.Pickup().Latitude(),
		PickupLong:        o.Pickup().Longitude(),
		DropLat:           o.Drop().Latitude(),
		DropLong:          o.Drop().Longitude(),
		DistanceKM:        o.DistanceKM(),
		AssignedDriverID:  o.AssignedDriver(),
		Status:            o.Status().String(),
		RequireOTP:        o.Requirements().OTP,
		RequireSignature:  o.Requirements().Signature,
		RequirePhoto:      o.Requirements().Photo,
		RequireBiometric:  o.Requirements().Biometric,
		FailureReason:     o.FailureReason(),
		CancelReason:      o.CancelReason(),
		BatchSize:         o.BatchSize(),
		DispatchedDrivers: uuidsToStrings(o.DispatchedDrivers()),
		CurrentBatch:      uuidsToStrings(o.CurrentBatch()),
		DispatchStartTime: o.DispatchStartTime(),
		FirstDispatchTime: o.FirstDispatchTime(),
		CreatedAt:         o.CreatedAt(),
	}
}

// toDomain reconstructs the aggregate from its row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLong)
	if err != nil {
		return nil, err
	}
	drop, err := kernel.NewGeoPoint(dto.DropLat, dto.DropLong)
	if err != nil {
		return nil, err
	}

	dispatched, err := stringsToUUIDs(dto.DispatchedDrivers)
	if err != nil {
		return nil, err
	}
	batch, err := stringsToUUIDs(dto.CurrentBatch)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Reference,
		dto.ExternalRef,
		dto.SectorType,
		dto.SenderID,
		dto.SenderName,
		dto.ReceiverName,
		dto.ReceiverPhone,
		pickup,
		drop,
		dto.AssignedDriverID,
		order.Status(dto.Status),
		order.Requirements{
			OTP:       dto.RequireOTP,
			Signature: dto.RequireSignature,
			Photo:     dto.RequirePhoto,
			Biometric: dto.RequireBiometric,
		},
		dto.FailureReason,
		dto.CancelReason,
		dto.BatchSize,
		dispatched,
		batch,
		dto.DispatchStartTime,
		dto.FirstDispatchTime,
		dto.CreatedAt,
	)
}

func uuidsToStrings(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToUUIDs(values pq.StringArray) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
