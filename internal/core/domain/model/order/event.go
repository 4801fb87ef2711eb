package order

import (
	"time"

	"tailoring/internal/core/domain/model/kernel"
)

// StatusChangedEvent notifies collaborators that an order moved to a new
// status. Events are emitted after the transition commits, never inside the
// atomic update, so consumers only ever see durable state.
type StatusChangedEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	FromStatus  Status
	ToStatus    Status
	ActorRole   Role
	OccurredAt  time.Time
}

// NewStatusChangedEvent builds the lifecycle event for a committed transition.
func NewStatusChangedEvent(o *Order, from Status, actorRole Role) StatusChangedEvent {
	return StatusChangedEvent{
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		FromStatus:  from,
		ToStatus:    o.Status(),
		ActorRole:   actorRole,
		OccurredAt:  time.Now().UTC(),
	}
}
