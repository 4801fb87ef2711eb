package order

import (
	"errors"
	"time"

	"tailoring/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created via NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry or RestoreHistoryEntry")

// HistoryEntry is the immutable audit record of one accepted status
// transition. Exactly one entry is appended per transition, never mutated or
// deleted, so replaying a order's entries oldest-first reconstructs its walk
// through the lifecycle graph.
type HistoryEntry struct {
	orderID    kernel.UUID
	fromStatus Status
	toStatus   Status
	actorID    kernel.UUID
	actorRole  Role
	occurredAt time.Time
	note       string

	isConstructed bool
}

// NewHistoryEntry creates the audit record for a transition that is about to
// be committed. The timestamp is taken at creation.
func NewHistoryEntry(
	orderID kernel.UUID,
	fromStatus Status,
	toStatus Status,
	actorID kernel.UUID,
	actorRole Role,
	note string,
) (*HistoryEntry, error) {
	return newHistoryEntry(orderID, fromStatus, toStatus, actorID, actorRole, time.Now().UTC(), note)
}

// RestoreHistoryEntry reconstructs an audit record from persistence.
func RestoreHistoryEntry(
	orderID kernel.UUID,
	fromStatus Status,
	toStatus Status,
	actorID kernel.UUID,
	actorRole Role,
	occurredAt time.Time,
	note string,
) (*HistoryEntry, error) {
	return newHistoryEntry(orderID, fromStatus, toStatus, actorID, actorRole, occurredAt, note)
}

func newHistoryEntry(
	orderID kernel.UUID,
	fromStatus Status,
	toStatus Status,
	actorID kernel.UUID,
	actorRole Role,
	occurredAt time.Time,
	note string,
) (*HistoryEntry, error) {
	if err := errors.Join(
		orderID.Validate(),
		fromStatus.Validate(),
		toStatus.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return nil, err
	}

	return &HistoryEntry{
		orderID:       orderID,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		actorID:       actorID,
		actorRole:     actorRole,
		occurredAt:    occurredAt,
		note:          note,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was created through a constructor.
func (e *HistoryEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// OrderID returns the order the transition belongs to.
func (e *HistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// FromStatus returns the status the order left.
func (e *HistoryEntry) FromStatus() Status {
	return e.fromStatus
}

// ToStatus returns the status the order entered.
func (e *HistoryEntry) ToStatus() Status {
	return e.toStatus
}

// ActorID returns the identity that requested the transition.
func (e *HistoryEntry) ActorID() kernel.UUID {
	return e.actorID
}

// ActorRole returns the role the actor held.
func (e *HistoryEntry) ActorRole() Role {
	return e.actorRole
}

// OccurredAt returns when the transition was recorded.
func (e *HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// Note returns the optional free-form annotation.
func (e *HistoryEntry) Note() string {
	return e.note
}
