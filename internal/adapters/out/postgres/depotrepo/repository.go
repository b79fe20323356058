// Package depotrepo persists pickup points and their storage layout.
package depotrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DepotDTO represents the database structure for persisting depots. The storage
// layout is a native text array.
type DepotDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(255);not null"`
	ZoneID    *uuid.UUID     `gorm:"type:uuid;index"`
	ManagerID *uuid.UUID     `gorm:"type:uuid"`
	Layout    pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for depot entities.
func (DepotDTO) TableName() string {
	return "depots"
}

// GormDepotRepository implements DepotRepository using GORM.
type GormDepotRepository struct {
	db *gorm.DB
}

// NewGormDepotRepository creates a new GORM depot repository.
func NewGormDepotRepository(db *gorm.DB) *GormDepotRepository {
	return &GormDepotRepository{db: db}
}

// Add saves a new depot to the database.
func (r *GormDepotRepository) Add(ctx context.Context, d *depot.Depot) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := DepotDTO{
		ID:        d.ID().Bytes(),
		Name:      d.Name(),
		ZoneID:    rawID(d.ZoneID()),
		ManagerID: rawID(d.ManagerID()),
		Layout:    pq.StringArray(d.Layout()),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("id", err)
		}
		return err
	}
	return nil
}

// Get retrieves a depot by ID.
func (r *GormDepotRepository) Get(ctx context.Context, id kernel.UUID) (*depot.Depot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DepotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("depot", id.String())
		}
		return nil, err
	}

	zoneID, err := optionalID(dto.ZoneID)
	if err != nil {
		return nil, err
	}
	managerID, err := optionalID(dto.ManagerID)
	if err != nil {
		return nil, err
	}
	return depot.NewDepot(id, dto.Name, zoneID, managerID, []string(dto.Layout))
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
