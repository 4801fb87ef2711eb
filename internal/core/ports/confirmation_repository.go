package ports

import (
	"context"
	"time"

	"tailoring/internal/core/domain/model/confirmation"
	"tailoring/internal/core/domain/model/kernel"
)

// ConfirmationRepository defines the persistence contract for delivery
// confirmations. One row exists per order; saving replaces the previous code,
// which both invalidates it and resets the attempt counter.
type ConfirmationRepository interface {
	// Save upserts the order's confirmation, replacing any prior one.
	Save(ctx context.Context, aggregate *confirmation.DeliveryConfirmation) error

	// GetActive retrieves the order's unconsumed confirmation.
	// Returns errs.ObjectNotFoundError when none exists or it was consumed.
	// Expiry is the caller's concern; stored expired rows are still returned.
	GetActive(ctx context.Context, orderID kernel.UUID) (*confirmation.DeliveryConfirmation, error)

	// RegisterFailedAttempt increments the active confirmation's attempt
	// counter in a single atomic update (never read-then-write) and returns
	// the new count. Returns errs.ObjectNotFoundError when no active
	// confirmation exists.
	RegisterFailedAttempt(ctx context.Context, orderID kernel.UUID) (int, error)

	// Consume marks the active confirmation as used. Returns false when the
	// confirmation was already consumed or absent (a lost race, not a failure).
	Consume(ctx context.Context, orderID kernel.UUID) (bool, error)

	// PurgeStale deletes consumed confirmations and ones that expired before
	// the given instant. Housekeeping only: verification enforces expiry
	// lazily and never depends on this.
	PurgeStale(ctx context.Context, expiredBefore time.Time) (int64, error)
}
