package ports

import (
	"context"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
)

// EventPublisher delivers lifecycle events to the notification collaborator
// that drives email/push messaging. Publishing is fire-and-forget from the
// engine's point of view: it happens after the transition commits, carries a
// bounded timeout, and a failure never rolls the transition back.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error
}

// DeliveryCodeSender hands a freshly issued confirmation code to the
// messaging collaborator, which resolves the customer's actual contact
// address. Called after the issuing transaction commits.
type DeliveryCodeSender interface {
	SendDeliveryCode(ctx context.Context, orderID kernel.UUID, customerID kernel.UUID, code string) error
}
