package http

import (
	"time"

	"tailoring/internal/core/application/usecases/queries"
	"tailoring/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Error is the uniform JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerID     string     `json:"customerId"`
	TailorID       string     `json:"tailorId"`
	ServiceType    string     `json:"serviceType"`
	GarmentType    string     `json:"garmentType"`
	Quantity       int        `json:"quantity"`
	MeasurementRef string     `json:"measurementRef"`
	EstimatedPrice float64    `json:"estimatedPrice"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`
}

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	ActorID      string `json:"actorId"`
	ActorRole    string `json:"actorRole"`
	TargetStatus string `json:"targetStatus"`
	Note         string `json:"note,omitempty"`
}

// VerifyDeliveryRequest is the body of POST /api/v1/orders/:id/delivery/verify.
type VerifyDeliveryRequest struct {
	TailorID string `json:"tailorId"`
	Code     string `json:"code"`
}

// SetFittingDateRequest is the body of PUT /api/v1/orders/:id/fitting-date.
type SetFittingDateRequest struct {
	TailorID    string    `json:"tailorId"`
	FittingDate time.Time `json:"fittingDate"`
}

// OrderResponse is the JSON representation of an order aggregate.
type OrderResponse struct {
	ID               uuid.UUID  `json:"id"`
	Number           string     `json:"number"`
	CustomerID       uuid.UUID  `json:"customerId"`
	TailorID         *uuid.UUID `json:"tailorId,omitempty"`
	ServiceType      string     `json:"serviceType"`
	GarmentType      string     `json:"garmentType"`
	Quantity         int        `json:"quantity"`
	EstimatedPrice   float64    `json:"estimatedPrice"`
	FinalPrice       *float64   `json:"finalPrice,omitempty"`
	MeasurementRef   string     `json:"measurementRef"`
	Status           string     `json:"status"`
	FinalFittingDate *time.Time `json:"finalFittingDate,omitempty"`
	DeliveryDate     *time.Time `json:"deliveryDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// HistoryEntryResponse is one row of the order's audit trail.
type HistoryEntryResponse struct {
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	ActorID    uuid.UUID `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	OccurredAt time.Time `json:"occurredAt"`
	Note       string    `json:"note,omitempty"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	response := OrderResponse{
		ID:               o.ID().Bytes(),
		Number:           o.Number(),
		CustomerID:       o.CustomerID().Bytes(),
		ServiceType:      o.ServiceType().String(),
		GarmentType:      o.GarmentType(),
		Quantity:         o.Quantity(),
		EstimatedPrice:   o.EstimatedPrice(),
		FinalPrice:       o.FinalPrice(),
		MeasurementRef:   o.MeasurementRef(),
		Status:           o.Status().String(),
		FinalFittingDate: o.FinalFittingDate(),
		DeliveryDate:     o.DeliveryDate(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		CompletedAt:      o.CompletedAt(),
	}
	if tailorID := o.TailorID(); tailorID != nil {
		googleUUID := tailorID.Bytes()
		response.TailorID = &googleUUID
	}
	return response
}

func toHistoryEntryResponse(entry queries.GetOrderHistoryQueryResponse) HistoryEntryResponse {
	return HistoryEntryResponse{
		FromStatus: entry.FromStatus.String(),
		ToStatus:   entry.ToStatus.String(),
		ActorID:    entry.ActorID.Bytes(),
		ActorRole:  entry.ActorRole.String(),
		OccurredAt: entry.OccurredAt,
		Note:       entry.Note,
	}
}
