package services

import "smartdelivery/internal/core/domain/model/sector"

// Charge is the priced breakdown for a delivered order.
type Charge struct {
	DistanceKM float64
	BaseTariff float64
	ExtraFee   float64
}

// Total is the base tariff plus the distance fee.
func (c Charge) Total() float64 {
	return c.BaseTariff + c.ExtraFee
}

// CalculateCharge prices a delivery against the sector rule: the base tariff
// covers the free distance, every kilometer beyond it costs the per-km fee.
func CalculateCharge(rule sector.Rule, distanceKM float64) Charge {
	extraKM := distanceKM - rule.FreeDistanceKM
	if extraKM < 0 {
		extraKM = 0
	}
	return Charge{
		DistanceKM: distanceKM,
		BaseTariff: rule.BasePrice,
		ExtraFee:   extraKM * rule.DistanceFeePerKM,
	}
}
