package businessrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBusinessRepository implements BusinessRepository using GORM.
type GormBusinessRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBusinessRepository creates a new GORM business repository.
func NewGormBusinessRepository(db *gorm.DB, tracker aggregateTracker) *GormBusinessRepository {
	return &GormBusinessRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new business to the database.
func (r *GormBusinessRepository) Add(ctx context.Context, aggregate *business.Business) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing business to the database.
func (r *GormBusinessRepository) Update(ctx context.Context, aggregate *business.Business) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// FullSaveAssociations keeps the credentials child table in sync.
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a business by ID.
func (r *GormBusinessRepository) Get(ctx context.Context, id kernel.UUID) (*business.Business, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BusinessDTO
	if err := r.db.WithContext(ctx).Preload("Credentials").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("business", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a business by its short code.
func (r *GormBusinessRepository) GetByCode(ctx context.Context, code string) (*business.Business, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto BusinessDTO
	if err := r.db.WithContext(ctx).Preload("Credentials").First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("business", code)
		}
		return nil, err
	}

	return toDomain(dto)
}
