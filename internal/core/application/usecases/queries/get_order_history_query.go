// Package queries contains read-only operations against the database.
// Implements the Query side of the CQRS architecture: handlers read projections
// directly over SQL and never touch domain aggregates' write paths.
package queries

import (
	"errors"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the transition trail of one order on behalf
// of an acting party. Only the order's customer or tailor may read it.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(orderID, customerID, order.RoleCustomer)
//	if err != nil {
//	    return fmt.Errorf("invalid history request: %w", err)
//	}
//
//	entries, err := NewGetOrderHistoryQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read history: %w", err)
//	}
//	for _, e := range entries {
//	    fmt.Printf("%s -> %s by %s at %s\n", e.FromStatus, e.ToStatus, e.ActorRole, e.OccurredAt)
//	}
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole order.Role

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for an order's transition history.
// Validates the identifiers and the role of the requesting party.
func NewGetOrderHistoryQuery(
	orderID kernel.UUID,
	actorID kernel.UUID,
	actorRole order.Role,
) (GetOrderHistoryQuery, error) {
	historyQuery := GetOrderHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		historyQuery.setOrderID(orderID),
		historyQuery.setActorID(actorID),
		historyQuery.setActorRole(actorRole),
	); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return historyQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose history is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ActorID returns the identifier of the requesting party.
func (q GetOrderHistoryQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ActorRole returns the role the requesting party acts in.
func (q GetOrderHistoryQuery) ActorRole() order.Role {
	return q.actorRole
}

func (q *GetOrderHistoryQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderHistoryQuery) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	q.actorID = actorID
	return nil
}

func (q *GetOrderHistoryQuery) setActorRole(actorRole order.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	q.actorRole = actorRole
	return nil
}

// GetOrderHistoryQueryResponse is one transition record, oldest entries first
// in the handler's result slice.
type GetOrderHistoryQueryResponse struct {
	FromStatus order.Status
	ToStatus   order.Status
	ActorID    kernel.UUID
	ActorRole  order.Role
	OccurredAt time.Time
	Note       string
}
