package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderListItem is the row shape shared by every order listing.
type OrderListItem struct {
	ID            uuid.UUID
	Reference     string
	SectorType    string
	SenderName    string
	ReceiverName  string
	ReceiverPhone string

	PickupLat  float64
	PickupLong float64
	DropLat    float64
	DropLong   float64
	DistanceKM float64

	Status    string
	CreatedAt time.Time
}

const orderListColumns = `
	id,
	reference,
	sector_type,
	sender_name,
	receiver_name,
	receiver_phone,
	pickup_lat,
	pickup_long,
	drop_lat,
	drop_long,
	distance_km,
	status,
	created_at
`

// scanOrderList runs a listing query and scans its rows into items.
func scanOrderList(ctx context.Context, db *gorm.DB, query string, args ...any) ([]OrderListItem, error) {
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderListItem, 0)
	for rows.Next() {
		var item OrderListItem
		err = rows.Scan(
			&item.ID,
			&item.Reference,
			&item.SectorType,
			&item.SenderName,
			&item.ReceiverName,
			&item.ReceiverPhone,
			&item.PickupLat,
			&item.PickupLong,
			&item.DropLat,
			&item.DropLong,
			&item.DistanceKM,
			&item.Status,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
