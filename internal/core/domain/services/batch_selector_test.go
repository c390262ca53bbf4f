package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
	"smartdelivery/internal/core/domain/services"
)

var pickupPoint = kernel.MustGeoPoint(18.0735, -15.9582)

func orderWithBatchSize(t *testing.T, batchSize int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		uuid.New(), "DEL-TEST0001", "", "standard",
		uuid.New(), "Acme", "Jane", "+22240000000",
		pickupPoint, kernel.MustGeoPoint(18.12, -15.90),
		order.Requirements{}, batchSize,
	)
	require.NoError(t, err)
	return o
}

// dispatchableDriver returns an approved driver at the given offset (in
// degrees latitude) from the pickup point. Bigger offset, farther away.
func dispatchableDriver(t *testing.T, sectors []string, latOffset float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(
		uuid.New(), "Driver", "+22230000000", "", "nni",
		driver.VehicleMotorcycle, sectors, "hash",
	)
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	d.MoveTo(kernel.MustGeoPoint(pickupPoint.Latitude()+latOffset, pickupPoint.Longitude()))
	return d
}

func TestSelectNextBatch(t *testing.T) {
	selector := services.NewBatchSelector()

	t.Run("should rank by proximity to pickup", func(t *testing.T) {
		o := orderWithBatchSize(t, 2)
		far := dispatchableDriver(t, []string{"standard"}, 0.5)
		near := dispatchableDriver(t, []string{"standard"}, 0.01)
		mid := dispatchableDriver(t, []string{"standard"}, 0.1)

		batch, err := selector.SelectNextBatch(o, []*driver.Driver{far, near, mid}, true)

		require.NoError(t, err)
		require.Len(t, batch, 2)
		assert.Equal(t, near.ID(), batch[0].ID())
		assert.Equal(t, mid.ID(), batch[1].ID())
	})

	t.Run("should cap at batch size", func(t *testing.T) {
		o := orderWithBatchSize(t, 3)
		drivers := make([]*driver.Driver, 0, 6)
		for i := 0; i < 6; i++ {
			drivers = append(drivers, dispatchableDriver(t, []string{"standard"}, float64(i)*0.02))
		}

		batch, err := selector.SelectNextBatch(o, drivers, true)

		require.NoError(t, err)
		assert.Len(t, batch, 3)
	})

	t.Run("should skip undispatchable drivers", func(t *testing.T) {
		o := orderWithBatchSize(t, 10)
		eligible := dispatchableDriver(t, []string{"standard"}, 0.1)
		unavailable := dispatchableDriver(t, []string{"standard"}, 0.01)
		unavailable.SetAvailability(false)

		batch, err := selector.SelectNextBatch(o, []*driver.Driver{eligible, unavailable}, true)

		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, eligible.ID(), batch[0].ID())
	})

	t.Run("should skip drivers outside the sector when enforced", func(t *testing.T) {
		o := orderWithBatchSize(t, 10)
		inSector := dispatchableDriver(t, []string{"standard"}, 0.1)
		outOfSector := dispatchableDriver(t, []string{"medical"}, 0.01)

		batch, err := selector.SelectNextBatch(o, []*driver.Driver{inSector, outOfSector}, true)

		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, inSector.ID(), batch[0].ID())
	})

	t.Run("should include any dispatchable driver when sector not enforced", func(t *testing.T) {
		o := orderWithBatchSize(t, 10)
		outOfSector := dispatchableDriver(t, []string{"medical"}, 0.01)

		batch, err := selector.SelectNextBatch(o, []*driver.Driver{outOfSector}, false)

		require.NoError(t, err)
		assert.Len(t, batch, 1)
	})

	t.Run("should exclude drivers already notified for this order", func(t *testing.T) {
		o := orderWithBatchSize(t, 10)
		notified := dispatchableDriver(t, []string{"standard"}, 0.01)
		fresh := dispatchableDriver(t, []string{"standard"}, 0.1)
		require.NoError(t, o.StartDispatching([]uuid.UUID{notified.ID()}, time.Now()))

		batch, err := selector.SelectNextBatch(o, []*driver.Driver{notified, fresh}, true)

		require.NoError(t, err)
		require.Len(t, batch, 1)
		assert.Equal(t, fresh.ID(), batch[0].ID())
	})

	t.Run("should return empty batch when no candidates remain", func(t *testing.T) {
		o := orderWithBatchSize(t, 10)

		batch, err := selector.SelectNextBatch(o, nil, true)

		require.NoError(t, err)
		assert.Empty(t, batch)
	})
}

func TestSelectNextBatch_ConsecutiveBatchesAreDisjoint(t *testing.T) {
	selector := services.NewBatchSelector()
	o := orderWithBatchSize(t, 5)

	drivers := make([]*driver.Driver, 0, 15)
	for i := 0; i < 15; i++ {
		drivers = append(drivers, dispatchableDriver(t, []string{"standard"}, float64(i)*0.01))
	}
	colocated := drivers[0]

	first, err := selector.SelectNextBatch(o, drivers, true)
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, colocated.ID(), first[0].ID(), "the colocated driver leads the first batch")

	firstIDs := make([]uuid.UUID, 0, len(first))
	for _, d := range first {
		firstIDs = append(firstIDs, d.ID())
	}
	require.NoError(t, o.StartDispatching(firstIDs, time.Now().UTC()))

	second, err := selector.SelectNextBatch(o, drivers, true)
	require.NoError(t, err)
	require.Len(t, second, 5)
	for _, d := range second {
		assert.False(t, containsDriver(first, d.ID()), "batches overlap on driver %s", d.ID())
	}
	assert.Equal(t, drivers[5].ID(), second[0].ID(), "second batch continues down the ranking")
}

func containsDriver(batch []*driver.Driver, id uuid.UUID) bool {
	for _, d := range batch {
		if d.ID() == id {
			return true
		}
	}
	return false
}
