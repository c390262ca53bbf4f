// Package sector holds the per-sector delivery rules: which proof-of-delivery
// requirements apply and how the delivery is priced. Rules are external
// configuration, read-only to the dispatch core.
package sector

import "smartdelivery/internal/core/domain/model/order"

// Engine defaults applied when no rule exists for an order's sector type.
const (
	DefaultBasePrice        = 50.0
	DefaultDistanceFeePerKM = 10.0
	DefaultFreeDistanceKM   = 5.0
)

// Rule configures one sector type: the requirement flags orders of that
// sector default to, and the tariff used by the billing trigger.
type Rule struct {
	SectorType string

	OTPRequired       bool
	SignatureRequired bool
	PhotoRequired     bool
	BiometricRequired bool

	BasePrice        float64
	DistanceFeePerKM float64
	FreeDistanceKM   float64

	Description string
}

// Requirements converts the rule's flags into the per-order requirement set.
func (r Rule) Requirements() order.Requirements {
	return order.Requirements{
		OTP:       r.OTPRequired,
		Signature: r.SignatureRequired,
		Photo:     r.PhotoRequired,
		Biometric: r.BiometricRequired,
	}
}

// DefaultRule is the fallback applied when no rule is configured for a
// sector type: no requirements, engine default tariff.
func DefaultRule(sectorType string) Rule {
	return Rule{
		SectorType:       sectorType,
		BasePrice:        DefaultBasePrice,
		DistanceFeePerKM: DefaultDistanceFeePerKM,
		FreeDistanceKM:   DefaultFreeDistanceKM,
	}
}

// DefaultRules returns the built-in sector catalogue seeded at startup.
// Operators can edit or extend these after installation.
func DefaultRules() []Rule {
	return []Rule{
		{
			SectorType:       "standard",
			BasePrice:        50.0,
			DistanceFeePerKM: 10.0,
			FreeDistanceKM:   5.0,
			Description:      "Standard delivery, simple drop-off at the receiver.",
		},
		{
			SectorType:        "premium",
			OTPRequired:       true,
			SignatureRequired: true,
			BasePrice:         100.0,
			DistanceFeePerKM:  10.0,
			FreeDistanceKM:    5.0,
			Description:       "Premium delivery requiring OTP verification and receiver signature.",
		},
		{
			SectorType:       "express",
			OTPRequired:      true,
			PhotoRequired:    true,
			BasePrice:        150.0,
			DistanceFeePerKM: 15.0,
			FreeDistanceKM:   5.0,
			Description:      "Express delivery with OTP verification and photo proof.",
		},
		{
			SectorType:        "fragile",
			OTPRequired:       true,
			SignatureRequired: true,
			PhotoRequired:     true,
			BasePrice:         120.0,
			DistanceFeePerKM:  12.0,
			FreeDistanceKM:    5.0,
			Description:       "Fragile goods: OTP, signature and photo required to document package state.",
		},
		{
			SectorType:        "medical",
			OTPRequired:       true,
			SignatureRequired: true,
			PhotoRequired:     true,
			BiometricRequired: true,
			BasePrice:         200.0,
			DistanceFeePerKM:  20.0,
			FreeDistanceKM:    5.0,
			Description:       "Medical delivery with the full protocol: OTP, signature, photo and receiver biometric check.",
		},
	}
}
