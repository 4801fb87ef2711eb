package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/errs"
	"tailoring/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrGarmentTypeIsRequired    = errors.New("garment type is required")
	ErrMeasurementRefIsRequired = errors.New("measurement reference is required")
)

// PlaceOrderCommand represents a request to place a new tailoring order.
// Encapsulates the commissioned work: who ordered, who sews, what garment,
// and the quoted price.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, customerID, tailorID,
//	    order.ServiceStitching, "sherwani", 1, "msr-2024-0117", 450, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed and awaiting tailor acceptance", placed.Number())
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     kernel.UUID
	tailorID       kernel.UUID
	serviceType    order.ServiceType
	garmentType    string
	quantity       int
	measurementRef string
	estimatedPrice float64
	deliveryDate   *time.Time

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new tailoring order.
// Validates identifiers, the service type, garment description, quantity and
// price. Returns an error if any validation fails.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	tailorID kernel.UUID,
	serviceType order.ServiceType,
	garmentType string,
	quantity int,
	measurementRef string,
	estimatedPrice float64,
	deliveryDate *time.Time,
) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		deliveryDate: deliveryDate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setOrderID(orderID),
		placeCommand.setCustomerID(customerID),
		placeCommand.setTailorID(tailorID),
		placeCommand.setServiceType(serviceType),
		placeCommand.setGarmentType(garmentType),
		placeCommand.setQuantity(quantity),
		placeCommand.setMeasurementRef(measurementRef),
		placeCommand.setEstimatedPrice(estimatedPrice),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the placing customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// TailorID returns the fulfilling tailor's identifier.
func (c PlaceOrderCommand) TailorID() kernel.UUID {
	return c.tailorID
}

// ServiceType returns the requested tailoring service.
func (c PlaceOrderCommand) ServiceType() order.ServiceType {
	return c.serviceType
}

// GarmentType returns the garment description.
func (c PlaceOrderCommand) GarmentType() string {
	return c.garmentType
}

// Quantity returns the number of garments ordered.
func (c PlaceOrderCommand) Quantity() int {
	return c.quantity
}

// MeasurementRef returns the opaque measurement snapshot reference.
func (c PlaceOrderCommand) MeasurementRef() string {
	return c.measurementRef
}

// EstimatedPrice returns the price quoted at placement.
func (c PlaceOrderCommand) EstimatedPrice() float64 {
	return c.estimatedPrice
}

// DeliveryDate returns the requested delivery date, or nil when none was given.
func (c PlaceOrderCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setTailorID(tailorID kernel.UUID) error {
	if err := tailorID.Validate(); err != nil {
		return err
	}

	c.tailorID = tailorID
	return nil
}

func (c *PlaceOrderCommand) setServiceType(serviceType order.ServiceType) error {
	if err := serviceType.Validate(); err != nil {
		return err
	}

	c.serviceType = serviceType
	return nil
}

func (c *PlaceOrderCommand) setGarmentType(garmentType string) error {
	if strings.TrimSpace(garmentType) == "" {
		return ErrGarmentTypeIsRequired
	}

	c.garmentType = garmentType
	return nil
}

func (c *PlaceOrderCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not at least 1", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *PlaceOrderCommand) setMeasurementRef(measurementRef string) error {
	if strings.TrimSpace(measurementRef) == "" {
		return ErrMeasurementRefIsRequired
	}

	c.measurementRef = measurementRef
	return nil
}

func (c *PlaceOrderCommand) setEstimatedPrice(estimatedPrice float64) error {
	if estimatedPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated price is invalid",
			fmt.Errorf("%f is negative", estimatedPrice))
	}

	c.estimatedPrice = estimatedPrice
	return nil
}
