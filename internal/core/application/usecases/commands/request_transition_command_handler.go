package commands

import (
	"context"
	"log/slog"
	"time"

	"tailoring/internal/core/domain/model/confirmation"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/domain/services"
	"tailoring/internal/core/ports"
)

// notifyTimeout bounds post-commit event publishing so a slow broker never
// stalls the request that already committed.
const notifyTimeout = 5 * time.Second

// RequestTransitionCommandHandler orchestrates status changes on orders.
// Checks that the actor is a party to the order, that the actor's role may
// drive the requested edge, and applies the change with a compare-and-swap so
// concurrent writers cannot double-apply a transition. When an order enters
// "ready", a delivery confirmation code is issued in the same transaction and
// sent to the customer after commit.
//
// Example:
//
//	handler := NewRequestTransitionCommandHandler(uowFactory, publisher, codeSender, logger)
//	cmd, _ := NewRequestTransitionCommand(orderID, tailorID, order.RoleTailor, order.Accepted, "")
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderAccessForbidden):
//	    // actor is not bound to this order
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // no such edge, or the actor's role may not drive it
//	case errors.Is(err, ErrOrderStateStale):
//	    // someone moved the order first; re-read and retry
//	case err != nil:
//	    // storage failure
//	default:
//	    log.Printf("order is now %s", updated.Status())
//	}
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AuthorizationPolicy
	events     ports.EventPublisher
	codeSender ports.DeliveryCodeSender
	logger     *slog.Logger
}

// NewRequestTransitionCommandHandler creates a handler for status change operations.
// Requires a UoWFactory because entering "ready" writes both the order and its
// delivery confirmation in one transaction.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	events ports.EventPublisher,
	codeSender ports.DeliveryCodeSender,
	logger *slog.Logger,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAuthorizationPolicy(),
		events:     events,
		codeSender: codeSender,
		logger:     logger,
	}
}

// Handle processes the transition request.
//
// The checks run in a fixed order so callers get the most specific error:
// not-found, then ownership (ErrOrderAccessForbidden), then the transition
// rules. The role policy and the lifecycle graph both reject with
// order.ErrInvalidTransition, carrying the current and attempted statuses; a
// missing edge and an edge the role may not drive are the same refusal to the
// caller. The status swap and the history append are
// a single compare-and-swap; losing the race yields ErrOrderStateStale and
// writes nothing. Notifications go out only after commit and are never a
// reason to fail the transition.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, wrapStorage(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	aggregate, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, wrapStorage(err)
	}

	if !aggregate.IsOwnedBy(cmd.ActorID(), cmd.ActorRole()) {
		return nil, ErrOrderAccessForbidden
	}

	expected := aggregate.Status()
	if !h.policy.Allows(cmd.ActorRole(), expected, cmd.TargetStatus()) {
		return nil, &order.InvalidTransitionError{From: expected, To: cmd.TargetStatus()}
	}

	if err = aggregate.ChangeStatus(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(
		cmd.OrderID(), expected, cmd.TargetStatus(), cmd.ActorID(), cmd.ActorRole(), cmd.Note())
	if err != nil {
		return nil, err
	}

	swapped, err := ordersRepo.CompareAndSwapStatus(ctx, cmd.OrderID(), expected, cmd.TargetStatus(), entry)
	if err != nil {
		return nil, wrapStorage(err)
	}
	if !swapped {
		return nil, ErrOrderStateStale
	}

	var issued *confirmation.DeliveryConfirmation
	if cmd.TargetStatus() == order.Ready {
		issued, err = confirmation.NewDeliveryConfirmation(cmd.OrderID())
		if err != nil {
			return nil, err
		}
		if err = uow.ConfirmationRepository().Save(ctx, issued); err != nil {
			return nil, wrapStorage(err)
		}
	}

	event := order.NewStatusChangedEvent(aggregate, expected, cmd.ActorRole())

	if err = uow.Commit(ctx); err != nil {
		return nil, wrapStorage(err)
	}

	h.notify(ctx, aggregate, event, issued)
	return aggregate, nil
}

// notify publishes the lifecycle event and, when a code was issued, hands it
// to the messaging collaborator. Failures are logged and swallowed: the
// transition is already durable.
func (h RequestTransitionCommandHandler) notify(
	ctx context.Context,
	aggregate *order.Order,
	event order.StatusChangedEvent,
	issued *confirmation.DeliveryConfirmation,
) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := h.events.PublishStatusChanged(notifyCtx, event); err != nil {
		h.logger.Error("failed to publish status change",
			"orderId", event.OrderID.String(),
			"toStatus", event.ToStatus.String(),
			"error", err)
	}

	if issued == nil {
		return
	}

	err := h.codeSender.SendDeliveryCode(notifyCtx, aggregate.ID(), aggregate.CustomerID(), issued.Code())
	if err != nil {
		h.logger.Error("failed to send delivery confirmation code",
			"orderId", aggregate.ID().String(),
			"error", err)
	}
}
