package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/core/domain/model/order"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	testPickup = kernel.MustGeoPoint(18.0735, -15.9582)
	testDrop   = kernel.MustGeoPoint(18.1200, -15.9000)
)

func draftOrder(t *testing.T, reqs order.Requirements) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		uuid.New(), "DEL-TEST0001", "ext-1", "standard",
		uuid.New(), "Acme", "Jane Receiver", "+22240000000",
		testPickup, testDrop, reqs, 0,
	)
	require.NoError(t, err)
	return o
}

// restoredOrder rebuilds an order in an arbitrary lifecycle state, the way a
// repository read would.
func restoredOrder(
	t *testing.T,
	status order.Status,
	reqs order.Requirements,
	assigned *uuid.UUID,
	dispatched []uuid.UUID,
	dispatchStart, firstDispatch *time.Time,
) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		uuid.New(), "DEL-TEST0001", "ext-1", "standard",
		uuid.New(), "Acme", "Jane Receiver", "+22240000000",
		testPickup, testDrop,
		assigned, status, reqs, "", "", 2,
		dispatched, dispatched, dispatchStart, firstDispatch,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func approvedDriver(t *testing.T, token string) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(
		uuid.New(), "Moussa", "+22230000000", "moussa@example.com", "1234567890",
		driver.VehicleMotorcycle, []string{"standard"}, "hash",
	)
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	d.MoveTo(kernel.MustGeoPoint(18.08, -15.95))
	d.SetFCMToken(token)
	return d
}

func timePtr(tm time.Time) *time.Time { return &tm }
