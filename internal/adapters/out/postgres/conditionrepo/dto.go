// Package conditionrepo persists the proof-of-delivery record of an order.
package conditionrepo

import (
	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/condition"
)

// ConditionDTO is the database row for a condition record. Signature and
// photo blobs live inline; at the sizes involved (single images) a separate
// object store is not worth the moving parts.
type ConditionDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	OTPValue    string
	OTPVerified bool

	SignatureFile     []byte
	SignatureFilename string

	Photo         []byte
	PhotoFilename string

	BiometricScore *float64

	Validated bool
}

// TableName overrides GORM's default to "delivery_conditions".
func (ConditionDTO) TableName() string {
	return "delivery_conditions"
}

func fromDomain(c *condition.Condition) ConditionDTO {
	return ConditionDTO{
		ID:                c.ID,
		OrderID:           c.OrderID,
		OTPValue:          c.OTPValue,
		OTPVerified:       c.OTPVerified,
		SignatureFile:     c.SignatureFile,
		SignatureFilename: c.SignatureFilename,
		Photo:             c.Photo,
		PhotoFilename:     c.PhotoFilename,
		BiometricScore:    c.BiometricScore,
		Validated:         c.Validated,
	}
}

func toDomain(dto ConditionDTO) *condition.Condition {
	return &condition.Condition{
		ID:                dto.ID,
		OrderID:           dto.OrderID,
		OTPValue:          dto.OTPValue,
		OTPVerified:       dto.OTPVerified,
		SignatureFile:     dto.SignatureFile,
		SignatureFilename: dto.SignatureFilename,
		Photo:             dto.Photo,
		PhotoFilename:     dto.PhotoFilename,
		BiometricScore:    dto.BiometricScore,
		Validated:         dto.Validated,
	}
}
