// Package courierrepo persists courier aggregates with GORM, handling the
// conversion between the domain model and the relational representation.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the database representation of a courier aggregate.
type CourierDTO struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	BusinessID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Username           string      `gorm:"type:varchar(64);not null;uniqueIndex"`
	PasswordHash       string      `gorm:"type:varchar(255)"`
	Name               string      `gorm:"type:varchar(255);not null"`
	Phone              string      `gorm:"type:varchar(64)"`
	Role               string      `gorm:"type:varchar(16);not null"`
	IsActive           bool        `gorm:"not null;index"`
	Location           LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	LastLocationUpdate *time.Time
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO is the embedded last-reported position within the courier
// row. Zero/zero means the courier has never reported a position.
type LocationDTO struct {
	Latitude  float64
	Longitude float64
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:           aggregate.ID().Bytes(),
		BusinessID:   aggregate.BusinessID().Bytes(),
		Username:     aggregate.Username(),
		PasswordHash: aggregate.PasswordHash(),
		Name:         aggregate.Name(),
		Phone:        aggregate.Phone(),
		Role:         aggregate.Role().String(),
		IsActive:     aggregate.IsActive(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		LastLocationUpdate: aggregate.LastLocationUpdate(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	role, err := courier.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id, businessID,
		dto.Username, dto.PasswordHash, dto.Name, dto.Phone,
		role, dto.IsActive, location, dto.LastLocationUpdate,
	)
}
