// Package services contains the stateless domain services of the dispatch
// core: batch candidate selection, proof-of-delivery validation and tariff
// pricing. All of them are pure functions over domain objects.
package services

import (
	"sort"

	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/order"
)

// BatchSelector picks the next batch of drivers to notify for an order.
//
// Candidates are scored by the negated great-circle distance from the
// driver's current location to the order's pickup point, so closer drivers
// score higher. No other weighting (rating, vehicle type) is applied. The
// top batch-size candidates form the new batch; ties keep the input order.
type BatchSelector struct{}

// NewBatchSelector creates a BatchSelector.
func NewBatchSelector() BatchSelector {
	return BatchSelector{}
}

// SelectNextBatch filters the given drivers down to eligible candidates and
// returns the closest ones, at most order.BatchSize() of them.
//
// A driver is eligible when available, verified, covering the order's sector
// (only enforced when requireSector is set, i.e. a sector rule exists for the
// order's type), and not yet notified for this order.
func (s BatchSelector) SelectNextBatch(o *order.Order, drivers []*driver.Driver, requireSector bool) ([]*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	type scored struct {
		score float64
		d     *driver.Driver
	}

	candidates := make([]scored, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.IsDispatchable() {
			continue
		}
		if requireSector && !d.HandlesSector(o.SectorType()) {
			continue
		}
		if o.WasNotified(d.ID()) {
			continue
		}

		candidates = append(candidates, scored{
			score: -d.Location().DistanceKMTo(o.Pickup()),
			d:     d,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	batchSize := o.BatchSize()
	if batchSize > len(candidates) {
		batchSize = len(candidates)
	}

	batch := make([]*driver.Driver, 0, batchSize)
	for _, c := range candidates[:batchSize] {
		batch = append(batch, c.d)
	}
	return batch, nil
}
