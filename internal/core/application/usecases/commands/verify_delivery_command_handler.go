package commands

import (
	"context"
	"log/slog"
	"time"

	"tailoring/internal/core/domain/model/confirmation"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/ports"
)

// VerifyDeliveryCommandHandler completes orders at physical handoff. The
// tailor presents the code the customer revealed; on a match the confirmation
// is consumed and the order moves from "ready" to "completed" in one
// transaction. On a mismatch the failed attempt is recorded durably even
// though the request fails.
//
// Example:
//
//	handler := NewVerifyDeliveryCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewVerifyDeliveryCommand(orderID, tailorID, presentedCode)
//	completed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrCodeMismatch):
//	    // wrong code, attempt recorded, tries remain
//	case errors.Is(err, confirmation.ErrTooManyAttempts):
//	    // locked out, a fresh code must be issued
//	case errors.Is(err, confirmation.ErrConfirmationExpired):
//	    // validity window passed
//	case err != nil:
//	    // not found / forbidden / stale / storage
//	default:
//	    log.Printf("order %s completed", completed.Number())
//	}
type VerifyDeliveryCommandHandler struct {
	uowFactory UoWFactory
	events     ports.EventPublisher
	logger     *slog.Logger
}

// NewVerifyDeliveryCommandHandler creates a handler for delivery verification.
// Requires a UoWFactory spanning orders and confirmations.
func NewVerifyDeliveryCommandHandler(
	uowFactory UoWFactory,
	events ports.EventPublisher,
	logger *slog.Logger,
) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger,
	}
}

// Handle processes the verification attempt.
//
// Checks run most-specific first: not-found, ownership, expiry, exhausted
// attempts, then the constant-time code comparison. A mismatch increments the
// attempt counter atomically and commits that increment before returning
// ErrCodeMismatch (or confirmation.ErrTooManyAttempts when the mismatch used
// the last try). A match consumes the confirmation and swaps the order to
// "completed"; both writes commit together.
func (h VerifyDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd VerifyDeliveryCommand,
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

	if !aggregate.IsOwnedBy(cmd.TailorID(), order.RoleTailor) {
		return nil, ErrOrderAccessForbidden
	}

	confirmationRepo := uow.ConfirmationRepository()
	active, err := confirmationRepo.GetActive(ctx, cmd.OrderID())
	if err != nil {
		return nil, wrapStorage(err)
	}

	if active.IsExpired(time.Now().UTC()) {
		return nil, confirmation.ErrConfirmationExpired
	}
	if active.AttemptsExhausted() {
		return nil, confirmation.ErrTooManyAttempts
	}

	if !active.Matches(cmd.Code()) {
		return nil, h.registerMismatch(ctx, uow, confirmationRepo, cmd.OrderID())
	}

	consumed, err := confirmationRepo.Consume(ctx, cmd.OrderID())
	if err != nil {
		return nil, wrapStorage(err)
	}
	if !consumed {
		return nil, ErrOrderStateStale
	}

	expected := aggregate.Status()
	if err = aggregate.ChangeStatus(order.Completed); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(
		cmd.OrderID(), expected, order.Completed, cmd.TailorID(), order.RoleTailor,
		"delivery confirmed with code")
	if err != nil {
		return nil, err
	}

	swapped, err := ordersRepo.CompareAndSwapStatus(ctx, cmd.OrderID(), expected, order.Completed, entry)
	if err != nil {
		return nil, wrapStorage(err)
	}
	if !swapped {
		return nil, ErrOrderStateStale
	}

	event := order.NewStatusChangedEvent(aggregate, expected, order.RoleTailor)

	if err = uow.Commit(ctx); err != nil {
		return nil, wrapStorage(err)
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err = h.events.PublishStatusChanged(notifyCtx, event); err != nil {
		h.logger.Error("failed to publish status change",
			"orderId", event.OrderID.String(),
			"toStatus", event.ToStatus.String(),
			"error", err)
	}

	return aggregate, nil
}

// registerMismatch records the failed attempt and commits it before the error
// is returned; the increment must survive the failed request.
func (h VerifyDeliveryCommandHandler) registerMismatch(
	ctx context.Context,
	uow UoW,
	confirmationRepo ports.ConfirmationRepository,
	orderID kernel.UUID,
) error {
	attempts, err := confirmationRepo.RegisterFailedAttempt(ctx, orderID)
	if err != nil {
		return wrapStorage(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return wrapStorage(err)
	}

	if attempts >= confirmation.MaxAttempts {
		return confirmation.ErrTooManyAttempts
	}
	return ErrCodeMismatch
}
