package confirmationrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tailoring/internal/core/domain/model/confirmation"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConfirmationRepository implements ConfirmationRepository using GORM.
type GormConfirmationRepository struct {
	db *gorm.DB
}

// NewGormConfirmationRepository creates a new GORM confirmation repository.
func NewGormConfirmationRepository(db *gorm.DB) *GormConfirmationRepository {
	return &GormConfirmationRepository{db: db}
}

// Save upserts the order's confirmation. The order id is the primary key, so
// issuing a fresh code overwrites the previous row in one statement, which
// both invalidates the old code and zeroes the attempt counter.
func (r *GormConfirmationRepository) Save(
	ctx context.Context, aggregate *confirmation.DeliveryConfirmation,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// GetActive retrieves the order's unconsumed confirmation. Expired rows are
// still returned; expiry is the caller's check.
func (r *GormConfirmationRepository) GetActive(
	ctx context.Context, orderID kernel.UUID,
) (*confirmation.DeliveryConfirmation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ConfirmationDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND NOT consumed", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryConfirmation", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// RegisterFailedAttempt bumps the attempt counter in a single UPDATE and
// returns the new count via RETURNING. Never read-then-write: two concurrent
// wrong guesses must both land.
func (r *GormConfirmationRepository) RegisterFailedAttempt(
	ctx context.Context, orderID kernel.UUID,
) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	row := r.db.WithContext(ctx).Raw(`
		UPDATE delivery_confirmations
		SET attempt_count = attempt_count + 1
		WHERE order_id = ? AND NOT consumed
		RETURNING attempt_count
	`, orderID.Bytes()).Row()

	var count int
	if err := row.Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.NewObjectNotFoundError("deliveryConfirmation", orderID.String())
		}
		return 0, err
	}

	return count, nil
}

// Consume marks the active confirmation as used. A zero-row update means a
// concurrent consumer got there first; that is reported, not failed.
func (r *GormConfirmationRepository) Consume(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&ConfirmationDTO{}).
		Where("order_id = ? AND NOT consumed", orderID.Bytes()).
		Update("consumed", true)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// PurgeStale deletes consumed rows and rows that expired before the given
// instant. Housekeeping only; verification never relies on it.
func (r *GormConfirmationRepository) PurgeStale(
	ctx context.Context, expiredBefore time.Time,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("consumed OR expires_at < ?", expiredBefore).
		Delete(&ConfirmationDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
