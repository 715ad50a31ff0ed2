// Package businessrepo persists business aggregates with GORM. Platform
// API credentials live in a child table keyed by business and platform.
package businessrepo

import (
	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// BusinessDTO is the database representation of a business aggregate.
type BusinessDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(255);not null"`
	IsActive    bool            `gorm:"not null"`
	Credentials []CredentialDTO `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "businesses".
func (BusinessDTO) TableName() string {
	return "businesses"
}

// CredentialDTO stores one platform's API credential for a business.
type CredentialDTO struct {
	BusinessID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Platform   string    `gorm:"type:varchar(32);primaryKey"`
	APIKey     string    `gorm:"type:varchar(255)"`
	APISecret  string    `gorm:"type:varchar(255)"`
	SupplierID string    `gorm:"type:varchar(64)"`
}

// TableName overrides GORM's default naming to use "business_credentials".
func (CredentialDTO) TableName() string {
	return "business_credentials"
}

func fromDomain(aggregate *business.Business) BusinessDTO {
	businessID := aggregate.ID().Bytes()

	credentials := make([]CredentialDTO, 0, len(aggregate.Credentials()))
	for platform, cred := range aggregate.Credentials() {
		credentials = append(credentials, CredentialDTO{
			BusinessID: businessID,
			Platform:   platform.String(),
			APIKey:     cred.Key,
			APISecret:  cred.Secret,
			SupplierID: cred.SupplierID,
		})
	}

	return BusinessDTO{
		ID:          businessID,
		Code:        aggregate.Code(),
		Name:        aggregate.Name(),
		IsActive:    aggregate.IsActive(),
		Credentials: credentials,
	}
}

func toDomain(dto BusinessDTO) (*business.Business, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	credentials := make(map[order.Platform]business.APICredential, len(dto.Credentials))
	for _, cred := range dto.Credentials {
		credentials[order.Platform(cred.Platform)] = business.APICredential{
			Key:        cred.APIKey,
			Secret:     cred.APISecret,
			SupplierID: cred.SupplierID,
		}
	}

	return business.RestoreBusiness(id, dto.Code, dto.Name, dto.IsActive, credentials)
}
