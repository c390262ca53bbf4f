// Package billingrepo persists billing records for delivered orders.
package billingrepo

import (
	"time"

	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/billing"
)

// BillingDTO is the database row for a billing record.
type BillingDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	DistanceKM float64
	BaseTariff float64
	ExtraFee   float64

	InvoiceRef string
	State      string `gorm:"index"`

	CreatedAt time.Time
}

// TableName overrides GORM's default to "billings".
func (BillingDTO) TableName() string {
	return "billings"
}

func fromDomain(b *billing.Billing) BillingDTO {
	return BillingDTO{
		ID:         b.ID,
		OrderID:    b.OrderID,
		DistanceKM: b.DistanceKM,
		BaseTariff: b.BaseTariff,
		ExtraFee:   b.ExtraFee,
		InvoiceRef: b.InvoiceRef,
		State:      string(b.State),
		CreatedAt:  b.CreatedAt,
	}
}

func toDomain(dto BillingDTO) *billing.Billing {
	return &billing.Billing{
		ID:         dto.ID,
		OrderID:    dto.OrderID,
		DistanceKM: dto.DistanceKM,
		BaseTariff: dto.BaseTariff,
		ExtraFee:   dto.ExtraFee,
		InvoiceRef: dto.InvoiceRef,
		State:      billing.State(dto.State),
		CreatedAt:  dto.CreatedAt,
	}
}
