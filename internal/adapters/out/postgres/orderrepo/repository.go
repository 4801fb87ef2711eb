package orderrepo

import (
	"context"
	"errors"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/errs"

	"gorm.io/gorm"
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

// Add saves a newly placed order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CompareAndSwapStatus moves the order to the next status only if the stored
// status still equals expected, and appends the history row in the same
// operation. The guard is the WHERE clause itself: a writer who lost the race
// matches zero rows and writes nothing, including the history.
func (r *GormOrderRepository) CompareAndSwapStatus(
	ctx context.Context,
	orderID kernel.UUID,
	expected order.Status,
	next order.Status,
	entry *order.HistoryEntry,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}
	if err := entry.Validate(); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	fields := map[string]any{
		"status":     next.String(),
		"updated_at": now,
	}
	if next == order.Completed {
		fields["completed_at"] = now
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", orderID.Bytes(), expected.String()).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	historyDTO := historyFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&historyDTO).Error; err != nil {
		return false, err
	}

	return true, nil
}

// ListHistory returns the order's transition rows oldest first. The bigserial
// primary key is the insertion sequence, so ordering by it preserves the
// exact commit order even when timestamps collide.
func (r *GormOrderRepository) ListHistory(
	ctx context.Context, orderID kernel.UUID,
) ([]*order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := historyToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// SetFittingDate records the final fitting date without touching the status.
func (r *GormOrderRepository) SetFittingDate(ctx context.Context, orderID kernel.UUID, at time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", orderID.Bytes()).
		Updates(map[string]any{
			"final_fitting_date": at.UTC(),
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	return nil
}
