// Package enterpriserepo persists sender accounts.
package enterpriserepo

import (
	"github.com/google/uuid"

	"smartdelivery/internal/core/domain/model/enterprise"
)

// EnterpriseDTO is the database row for a sender account.
type EnterpriseDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Phone string
	Email string `gorm:"uniqueIndex"`

	PartnerRef   string
	FCMToken     string
	PasswordHash string
}

// TableName overrides GORM's default to "enterprises".
func (EnterpriseDTO) TableName() string {
	return "enterprises"
}

func fromDomain(e *enterprise.Enterprise) EnterpriseDTO {
	return EnterpriseDTO{
		ID:           e.ID,
		Name:         e.Name,
		Phone:        e.Phone,
		Email:        e.Email,
		PartnerRef:   e.PartnerRef,
		FCMToken:     e.FCMToken,
		PasswordHash: e.PasswordHash,
	}
}

func toDomain(dto EnterpriseDTO) *enterprise.Enterprise {
	return &enterprise.Enterprise{
		ID:           dto.ID,
		Name:         dto.Name,
		Phone:        dto.Phone,
		Email:        dto.Email,
		PartnerRef:   dto.PartnerRef,
		FCMToken:     dto.FCMToken,
		PasswordHash: dto.PasswordHash,
	}
}
