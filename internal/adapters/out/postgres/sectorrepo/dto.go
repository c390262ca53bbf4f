// Package sectorrepo persists the per-sector delivery rules.
package sectorrepo

import "smartdelivery/internal/core/domain/model/sector"

// SectorRuleDTO is the database row for a sector rule. The sector type
// itself is the key.
type SectorRuleDTO struct {
	SectorType string `gorm:"primaryKey"`

	OTPRequired       bool
	SignatureRequired bool
	PhotoRequired     bool
	BiometricRequired bool

	BasePrice        float64
	DistanceFeePerKM float64
	FreeDistanceKM   float64

	Description string
}

// TableName overrides GORM's default to "sector_rules".
func (SectorRuleDTO) TableName() string {
	return "sector_rules"
}

func fromDomain(r sector.Rule) SectorRuleDTO {
	return SectorRuleDTO{
		SectorType:        r.SectorType,
		OTPRequired:       r.OTPRequired,
		SignatureRequired: r.SignatureRequired,
		PhotoRequired:     r.PhotoRequired,
		BiometricRequired: r.BiometricRequired,
		BasePrice:         r.BasePrice,
		DistanceFeePerKM:  r.DistanceFeePerKM,
		FreeDistanceKM:    r.FreeDistanceKM,
		Description:       r.Description,
	}
}

func toDomain(dto SectorRuleDTO) sector.Rule {
	return sector.Rule{
		SectorType:        dto.SectorType,
		OTPRequired:       dto.OTPRequired,
		SignatureRequired: dto.SignatureRequired,
		PhotoRequired:     dto.PhotoRequired,
		BiometricRequired: dto.BiometricRequired,
		BasePrice:         dto.BasePrice,
		DistanceFeePerKM:  dto.DistanceFeePerKM,
		FreeDistanceKM:    dto.FreeDistanceKM,
		Description:       dto.Description,
	}
}
