package commands

import (
	"context"

	"tailoring/internal/core/domain/model/order"
)

// SetFittingDateCommandHandler records the final fitting date on an order.
// Only the fulfilling tailor may schedule the fitting; the write touches the
// date field alone.
type SetFittingDateCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetFittingDateCommandHandler creates a handler for fitting scheduling.
// Requires an OrderUoWFactory for transactional persistence.
func NewSetFittingDateCommandHandler(uowFactory OrderUoWFactory) SetFittingDateCommandHandler {
	return SetFittingDateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scheduling command.
// Loads the order, checks the tailor is bound to it, and persists the date.
// No status check: the fitting may be scheduled in any non-terminal point of
// the work, and rescheduling simply overwrites.
func (h SetFittingDateCommandHandler) Handle(
	ctx context.Context,
	cmd SetFittingDateCommand,
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

	if err = aggregate.ScheduleFitting(cmd.FittingDate()); err != nil {
		return nil, err
	}

	if err = ordersRepo.SetFittingDate(ctx, cmd.OrderID(), cmd.FittingDate().UTC()); err != nil {
		return nil, wrapStorage(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, wrapStorage(err)
	}

	return aggregate, nil
}
