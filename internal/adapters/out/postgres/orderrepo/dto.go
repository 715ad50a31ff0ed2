// Package orderrepo persists order aggregates with GORM, handling the
// conversion between the domain model and the relational representation.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO is the database representation of an order aggregate.
// Status and courier_id are indexed because claim arbitration and the
// pool query filter on them.
type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BusinessID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	CourierID    *uuid.UUID     `gorm:"type:uuid;index"`
	Platform     string         `gorm:"type:varchar(32);not null"`
	OrderNumber  string         `gorm:"type:varchar(64);not null"`
	Customer     CustomerDTO    `gorm:"embedded;embeddedPrefix:customer_"`
	Location     LocationDTO    `gorm:"embedded;embeddedPrefix:location_"`
	Items        pq.StringArray `gorm:"type:text[]"`
	TotalPrice   string         `gorm:"type:varchar(64)"`
	OrderTime    time.Time      `gorm:"not null"`
	Status       string         `gorm:"type:varchar(16);not null;index"`
	ClaimedAt    *time.Time
	DeliveryTime *time.Time
	Rating       *int
	RatingNote   *string `gorm:"type:text"`
	Photo        *string `gorm:"type:text"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is the embedded recipient block within the order row.
type CustomerDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(64)"`
	Address string `gorm:"type:text"`
}

// LocationDTO is the embedded delivery coordinates within the order row.
// Zero/zero means the source payload carried no coordinates.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		BusinessID:  aggregate.BusinessID().Bytes(),
		CourierID:   courierID,
		Platform:    aggregate.Platform().String(),
		OrderNumber: aggregate.OrderNumber(),
		Customer: CustomerDTO{
			Name:    aggregate.Customer().Name,
			Phone:   aggregate.Customer().Phone,
			Address: aggregate.Customer().Address,
		},
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		Items:        pq.StringArray(aggregate.Items()),
		TotalPrice:   aggregate.TotalPrice(),
		OrderTime:    aggregate.OrderTime(),
		Status:       aggregate.Status().String(),
		ClaimedAt:    aggregate.ClaimedAt(),
		DeliveryTime: aggregate.DeliveryTime(),
		Rating:       aggregate.Rating(),
		RatingNote:   aggregate.RatingNote(),
		Photo:        aggregate.Photo(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:          id,
		BusinessID:  businessID,
		Platform:    order.Platform(dto.Platform),
		OrderNumber: dto.OrderNumber,
		Customer: order.Customer{
			Name:    dto.Customer.Name,
			Phone:   dto.Customer.Phone,
			Address: dto.Customer.Address,
		},
		Location:     location,
		Items:        []string(dto.Items),
		TotalPrice:   dto.TotalPrice,
		OrderTime:    dto.OrderTime,
		Status:       status,
		CourierID:    courierID,
		ClaimedAt:    dto.ClaimedAt,
		DeliveryTime: dto.DeliveryTime,
		Rating:       dto.Rating,
		RatingNote:   dto.RatingNote,
		Photo:        dto.Photo,
	})
}
