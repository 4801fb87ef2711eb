package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrHistoryAccessForbidden is returned when the requesting party is not
// bound to the order whose history was asked for.
var ErrHistoryAccessForbidden = errors.New("actor is not a party to this order")

// GetOrderHistoryQueryHandler reads an order's transition trail straight from
// the database. The trail is append-only, so rows come back in insertion
// order and replaying them reconstructs every step of the lifecycle.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query, _ := NewGetOrderHistoryQuery(orderID, tailorID, order.RoleTailor)
//
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to read history: %v", err)
//	    return err
//	}
//	fmt.Printf("%d transitions recorded\n", len(entries))
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the history query.
// First resolves the order's parties to gate access: an unknown order yields
// a not-found error, a requester who is neither its customer nor its tailor
// gets ErrHistoryAccessForbidden. Rows are ordered by their insertion
// sequence, oldest first. A placed but never transitioned order yields an
// empty slice.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorize(ctx, query); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			actor_id,
			actor_role,
			occurred_at,
			note
		FROM order_history
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var fromStatus, toStatus, actorRole, note string
		var actorID uuid.UUID
		var occurredAt time.Time

		err = rows.Scan(
			&fromStatus,
			&toStatus,
			&actorID,
			&actorRole,
			&occurredAt,
			&note,
		)
		if err != nil {
			return nil, err
		}

		entry, convErr := toHistoryResponse(fromStatus, toStatus, actorID, actorRole, occurredAt, note)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// authorize resolves the order's parties and checks the requester is one of
// them, in the role it claims.
func (h GetOrderHistoryQueryHandler) authorize(ctx context.Context, query GetOrderHistoryQuery) error {
	var customerID uuid.UUID
	var tailorID uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT customer_id, tailor_id FROM orders WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&customerID, &tailorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return err
	}

	actor := query.ActorID().Bytes()
	switch query.ActorRole() {
	case order.RoleCustomer:
		if customerID == actor {
			return nil
		}
	case order.RoleTailor:
		if tailorID.Valid && tailorID.UUID == actor {
			return nil
		}
	}
	return ErrHistoryAccessForbidden
}

func toHistoryResponse(
	fromStatus, toStatus string,
	actorID uuid.UUID,
	actorRole string,
	occurredAt time.Time,
	note string,
) (GetOrderHistoryQueryResponse, error) {
	from, err := order.StatusFromString(fromStatus)
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	to, err := order.StatusFromString(toStatus)
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	role, err := order.RoleFromString(actorRole)
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	actor, err := kernel.UUIDFromBytes(actorID[:])
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	return GetOrderHistoryQueryResponse{
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actor,
		ActorRole:  role,
		OccurredAt: occurredAt,
		Note:       note,
	}, nil
}
