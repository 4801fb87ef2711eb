// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate and its append-only
// transition history, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their string names so rows stay readable in psql and
// the history table joins on the same vocabulary.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           string     `gorm:"uniqueIndex"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	TailorID         *uuid.UUID `gorm:"type:uuid;index"`
	ServiceType      string
	GarmentType      string
	Quantity         int
	EstimatedPrice   float64
	FinalPrice       *float64
	MeasurementRef   string
	Status           string `gorm:"index"`
	FinalFittingDate *time.Time
	DeliveryDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryDTO represents one row of the append-only transition trail. The
// bigserial primary key doubles as the insertion sequence: ordering by it
// replays transitions exactly as they were committed.
type HistoryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string
	ToStatus   string
	ActorID    uuid.UUID `gorm:"type:uuid"`
	ActorRole  string
	OccurredAt time.Time
	Note       string
}

// TableName specifies the database table name for history rows.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var tailorID *uuid.UUID
	if id := aggregate.TailorID(); id != nil {
		raw := id.Bytes()
		tailorID = &raw
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		TailorID:         tailorID,
		ServiceType:      aggregate.ServiceType().String(),
		GarmentType:      aggregate.GarmentType(),
		Quantity:         aggregate.Quantity(),
		EstimatedPrice:   aggregate.EstimatedPrice(),
		FinalPrice:       aggregate.FinalPrice(),
		MeasurementRef:   aggregate.MeasurementRef(),
		Status:           aggregate.Status().String(),
		FinalFittingDate: aggregate.FinalFittingDate(),
		DeliveryDate:     aggregate.DeliveryDate(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
		CompletedAt:      aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, so corrupt rows fail loudly instead of becoming live state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var tailorID *kernel.UUID
	if dto.TailorID != nil {
		tID, tailorErr := kernel.UUIDFromBytes((*dto.TailorID)[:])
		if tailorErr != nil {
			return nil, tailorErr
		}
		tailorID = &tID
	}

	serviceType, err := order.NewServiceType(dto.ServiceType)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:               id,
		Number:           dto.Number,
		CustomerID:       customerID,
		TailorID:         tailorID,
		ServiceType:      serviceType,
		GarmentType:      dto.GarmentType,
		Quantity:         dto.Quantity,
		EstimatedPrice:   dto.EstimatedPrice,
		FinalPrice:       dto.FinalPrice,
		MeasurementRef:   dto.MeasurementRef,
		Status:           status,
		FinalFittingDate: dto.FinalFittingDate,
		DeliveryDate:     dto.DeliveryDate,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
		CompletedAt:      dto.CompletedAt,
	})
}

// historyFromDomain converts a history entry to its database row. The ID is
// left zero so the database assigns the next sequence value.
func historyFromDomain(entry *order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: entry.FromStatus().String(),
		ToStatus:   entry.ToStatus().String(),
		ActorID:    entry.ActorID().Bytes(),
		ActorRole:  entry.ActorRole().String(),
		OccurredAt: entry.OccurredAt(),
		Note:       entry.Note(),
	}
}

// historyToDomain converts a database row back to a history entry.
func historyToDomain(dto HistoryDTO) (*order.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	fromStatus, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return nil, err
	}

	toStatus, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	actorRole, err := order.RoleFromString(dto.ActorRole)
	if err != nil {
		return nil, err
	}

	return order.RestoreHistoryEntry(orderID, fromStatus, toStatus, actorID, actorRole, dto.OccurredAt, dto.Note)
}
