// Package confirmationrepo persists delivery confirmation codes. One row per
// order: the order id is the primary key, so re-issuing a code is an upsert
// that atomically replaces the old code and resets the attempt counter.
package confirmationrepo

import (
	"time"

	"tailoring/internal/core/domain/model/confirmation"
	"tailoring/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConfirmationDTO represents the database structure for delivery confirmations.
type ConfirmationDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code         string
	ExpiresAt    time.Time `gorm:"index"`
	AttemptCount int
	Consumed     bool
}

// TableName specifies the database table name for confirmation rows.
func (ConfirmationDTO) TableName() string {
	return "delivery_confirmations"
}

// fromDomain converts a confirmation aggregate to its database row.
func fromDomain(aggregate *confirmation.DeliveryConfirmation) ConfirmationDTO {
	return ConfirmationDTO{
		OrderID:      aggregate.OrderID().Bytes(),
		Code:         aggregate.Code(),
		ExpiresAt:    aggregate.ExpiresAt(),
		AttemptCount: aggregate.AttemptCount(),
		Consumed:     aggregate.Consumed(),
	}
}

// toDomain converts a database row back to a confirmation aggregate.
func toDomain(dto ConfirmationDTO) (*confirmation.DeliveryConfirmation, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return confirmation.RestoreDeliveryConfirmation(
		orderID, dto.Code, dto.ExpiresAt, dto.AttemptCount, dto.Consumed)
}
