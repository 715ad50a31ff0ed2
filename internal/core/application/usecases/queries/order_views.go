// Package queries contains the read side of the service. Handlers go
// straight to the database with raw SQL and return flat read models;
// they never load aggregates or apply domain rules.
package queries

import (
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderView is the read model for order listings and lookups. CourierName
// is resolved by joining the couriers table; it is nil while the order
// sits in the pool.
type OrderView struct {
	ID              kernel.UUID
	Platform        string
	OrderNumber     string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Location        kernel.GeoPoint
	Items           []string
	TotalPrice      string
	OrderTime       time.Time
	Status          string
	CourierID       *kernel.UUID
	CourierName     *string
	ClaimedAt       *time.Time
	DeliveryTime    *time.Time
	Rating          *int
	RatingNote      *string
	Photo           *string
}

// orderViewColumns is the select list scanOrderView expects, with the
// orders table aliased as o and couriers as c.
const orderViewColumns = `
	o.id,
	o.platform,
	o.order_number,
	o.customer_name,
	o.customer_phone,
	o.customer_address,
	o.location_latitude,
	o.location_longitude,
	o.items,
	o.total_price,
	o.order_time,
	o.status,
	o.courier_id,
	c.name,
	o.claimed_at,
	o.delivery_time,
	o.rating,
	o.rating_note,
	o.photo`

func scanOrderView(rows *sql.Rows) (OrderView, error) {
	var view OrderView
	var id uuid.UUID
	var courierID uuid.NullUUID
	var latitude, longitude float64
	var items pq.StringArray

	err := rows.Scan(
		&id,
		&view.Platform,
		&view.OrderNumber,
		&view.CustomerName,
		&view.CustomerPhone,
		&view.CustomerAddress,
		&latitude,
		&longitude,
		&items,
		&view.TotalPrice,
		&view.OrderTime,
		&view.Status,
		&courierID,
		&view.CourierName,
		&view.ClaimedAt,
		&view.DeliveryTime,
		&view.Rating,
		&view.RatingNote,
		&view.Photo,
	)
	if err != nil {
		return OrderView{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderView{}, err
	}
	view.ID = orderID

	if courierID.Valid {
		ownerID, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return OrderView{}, idErr
		}
		view.CourierID = &ownerID
	}

	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return OrderView{}, err
	}
	view.Location = location
	view.Items = items

	return view, nil
}
