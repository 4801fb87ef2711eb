package commands

import (
	"context"

	"tailoring/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Creates new orders in "pending" status, bound to the chosen tailor and
// awaiting acceptance.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	cmd, _ := NewPlaceOrderCommand(kernel.NewUUID(), customerID, tailorID,
//	    order.ServiceAlteration, "suit jacket", 1, "msr-77", 80, nil)
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is now pending and visible to the tailor
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// Builds the aggregate in "pending" status and persists it. Placement itself
// writes no history: the trail starts with the first transition.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tailorID := cmd.TailorID()
	placed, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		&tailorID,
		cmd.ServiceType(),
		cmd.GarmentType(),
		cmd.Quantity(),
		cmd.MeasurementRef(),
		cmd.EstimatedPrice(),
		cmd.DeliveryDate(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, wrapStorage(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, wrapStorage(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, wrapStorage(err)
	}

	return placed, nil
}
