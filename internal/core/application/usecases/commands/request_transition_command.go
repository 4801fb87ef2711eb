package commands

import (
	"errors"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand represents a request to move an order to a new
// lifecycle status on behalf of an acting party. The note is an optional
// free-form remark recorded in the order's history.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(orderID, tailorID,
//	    order.RoleTailor, order.Accepted, "fabric in stock")
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actorID      kernel.UUID
	actorRole    order.Role
	targetStatus order.Status
	note         string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a command to request a status change.
// Validates the order and actor identifiers, the role and the target status.
// Whether the transition itself is legal is decided by the handler, not here.
func NewRequestTransitionCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	actorRole order.Role,
	targetStatus order.Status,
	note string,
) (RequestTransitionCommand, error) {
	transitionCommand := RequestTransitionCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setActorID(actorID),
		transitionCommand.setActorRole(actorRole),
		transitionCommand.setTargetStatus(targetStatus),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequestTransitionCommandIsNotConstructed if validation fails.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the requesting party.
func (c RequestTransitionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role the requesting party acts in.
func (c RequestTransitionCommand) ActorRole() order.Role {
	return c.actorRole
}

// TargetStatus returns the requested destination status.
func (c RequestTransitionCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Note returns the optional remark to record in the history.
func (c RequestTransitionCommand) Note() string {
	return c.note
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *RequestTransitionCommand) setActorRole(actorRole order.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}

func (c *RequestTransitionCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}
