package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its ledgers.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("id", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus is a conditional UPDATE on (id, status, version). Ledger rows the
// store already has are left alone; new ones are inserted in the same statement batch.
func (r *GormOrderRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
	expectedVersion int,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND version = ?", dto.ID, int(expectedStatus), expectedVersion).
		Select("*").
		Omit("id", "tracking_number", "customer_id", "seller_id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.staleOrMissing(ctx, aggregate.ID(), expectedStatus)
	}

	if err := r.appendLedgers(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) appendLedgers(db *gorm.DB, dto OrderDTO) error {
	ignore := clause.OnConflict{DoNothing: true}
	if len(dto.TrackingEvents) > 0 {
		if err := db.Clauses(ignore).Create(&dto.TrackingEvents).Error; err != nil {
			return err
		}
	}
	if len(dto.StatusChanges) > 0 {
		if err := db.Clauses(ignore).Create(&dto.StatusChanges).Error; err != nil {
			return err
		}
	}
	if dto.RefundRequest != nil {
		if err := db.Clauses(ignore).Create(dto.RefundRequest).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) staleOrMissing(ctx context.Context, id kernel.UUID, expected order.Status) error {
	var current struct {
		Status  int
		Version int
	}
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("status", "version").
		Where("id = ?", id.Bytes()).
		Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return err
	}
	return order.NewStaleStateError(id, expected,
		fmt.Errorf("stored order is %s at version %d", order.Status(current.Status), current.Version))
}

// AppendDispute inserts one dispute row; the order row is not touched.
func (r *GormOrderRepository) AppendDispute(ctx context.Context, orderID kernel.UUID, message order.DisputeMessage) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", orderID.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	row := disputeFromDomain(orderID.Bytes(), message)
	return db.Create(&row).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withLedgers(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves an order by its label code, case-insensitively.
func (r *GormOrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))

	var dto OrderDTO
	if err := r.withLedgers(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByDepotAndStatus returns the orders checked in at depotID in status, oldest check-in first.
func (r *GormOrderRepository) ListByDepotAndStatus(
	ctx context.Context,
	depotID kernel.UUID,
	status order.Status,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withLedgers(ctx).
		Where("depot_id = ? AND status = ?", depotID.Bytes(), int(status)).
		Order("checked_in_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// ListInStatusSince returns orders in status whose last change happened before the given time.
func (r *GormOrderRepository) ListInStatusSince(
	ctx context.Context,
	status order.Status,
	before time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withLedgers(ctx).
		Where("status = ? AND last_status_change_at < ?", int(status), before).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

func (r *GormOrderRepository) withLedgers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("RefundRequest").
		Preload("TrackingEvents", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("StatusChanges", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Disputes", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
