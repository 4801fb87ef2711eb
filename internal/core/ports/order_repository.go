package ports

import (
	"context"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only transition history. It holds no business rules; the
// lifecycle engine decides, the repository records.
type OrderRepository interface {
	// Add persists a newly placed order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CompareAndSwapStatus atomically moves the order from the expected status
	// to the next one and appends the matching history entry. Both writes
	// commit together or not at all. Returns false without error when the
	// stored status no longer equals expected (a lost race, not a failure).
	CompareAndSwapStatus(
		ctx context.Context,
		orderID kernel.UUID,
		expected order.Status,
		next order.Status,
		entry *order.HistoryEntry,
	) (bool, error)

	// ListHistory returns the order's transition records oldest first,
	// in strict insertion order for audit replay.
	ListHistory(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error)

	// SetFittingDate records the final fitting date. The field is independent
	// of the lifecycle; no status or history is touched.
	SetFittingDate(ctx context.Context, orderID kernel.UUID, at time.Time) error
}
