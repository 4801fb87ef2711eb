package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrGarmentTypeIsRequired is returned when the garment description is empty.
	ErrGarmentTypeIsRequired = errors.New("garment type is required")

	// ErrMeasurementRefIsRequired is returned when the measurement snapshot reference is empty.
	ErrMeasurementRefIsRequired = errors.New("measurement reference is required")
)

// Order is the aggregate root of the tailoring order lifecycle. It binds the
// customer and the fulfilling tailor to a single piece of commissioned work
// and owns the mutable status that every other rule hangs off.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a valid customer identifier
//   - Quantity must be at least 1, prices must not be negative
//   - Status only moves along edges of the lifecycle graph (see Status)
//   - Orders are never deleted; completed and cancelled are absorbing states
//   - Can only be created through NewOrder or RestoreOrder
//
// Mutation happens exclusively through the lifecycle engine; the aggregate
// exposes ChangeStatus and ScheduleFitting and keeps everything else read-only.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order reference, derived from the id
	number string

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// tailorID identifies the fulfilling tailor (nil until a tailor is bound)
	tailorID *kernel.UUID

	serviceType    ServiceType
	garmentType    string
	quantity       int
	estimatedPrice float64
	finalPrice     *float64

	// measurementRef points at a measurement snapshot; opaque to this core
	measurementRef string

	// status is the current state in the order lifecycle
	status Status

	// finalFittingDate is scheduled by the tailor; independent of status
	finalFittingDate *time.Time

	// deliveryDate is the delivery date requested at placement
	deliveryDate *time.Time

	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in pending status. This is the only way to
// create a valid Order from placement input, ensuring all business invariants
// hold from the start.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - customerID: the placing customer (must be a valid UUID)
//   - tailorID: the fulfilling tailor, may be nil until assignment
//   - serviceType: one of the fixed service vocabulary entries
//   - garmentType: free-form garment description, must not be empty
//   - quantity: number of garments, at least 1
//   - measurementRef: opaque reference to the measurement snapshot
//   - estimatedPrice: quoted price, must not be negative
//   - deliveryDate: optional delivery date requested by the customer
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	tailorID *kernel.UUID,
	serviceType ServiceType,
	garmentType string,
	quantity int,
	measurementRef string,
	estimatedPrice float64,
	deliveryDate *time.Time,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		deliveryDate:  deliveryDate,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setTailorID(tailorID),
		o.setServiceType(serviceType),
		o.setGarmentType(garmentType),
		o.setQuantity(quantity),
		o.setMeasurementRef(measurementRef),
		o.setEstimatedPrice(estimatedPrice),
	); err != nil {
		return nil, err
	}

	o.number = numberFromID(id)
	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order for
// reconstruction from storage.
type RestoreOrderParams struct {
	ID               kernel.UUID
	Number           string
	CustomerID       kernel.UUID
	TailorID         *kernel.UUID
	ServiceType      ServiceType
	GarmentType      string
	Quantity         int
	EstimatedPrice   float64
	FinalPrice       *float64
	MeasurementRef   string
	Status           Status
	FinalFittingDate *time.Time
	DeliveryDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time
}

// RestoreOrder reconstructs an Order from persistence, re-validating the
// stored state so corrupt rows never become live aggregates.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		finalPrice:       params.FinalPrice,
		finalFittingDate: params.FinalFittingDate,
		deliveryDate:     params.DeliveryDate,
		createdAt:        params.CreatedAt,
		updatedAt:        params.UpdatedAt,
		completedAt:      params.CompletedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setCustomerID(params.CustomerID),
		o.setTailorID(params.TailorID),
		o.setServiceType(params.ServiceType),
		o.setGarmentType(params.GarmentType),
		o.setQuantity(params.Quantity),
		o.setMeasurementRef(params.MeasurementRef),
		o.setEstimatedPrice(params.EstimatedPrice),
		o.setStatus(params.Status),
	); err != nil {
		return nil, err
	}

	o.number = params.Number
	if o.number == "" {
		o.number = numberFromID(params.ID)
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order reference.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// TailorID returns the identifier of the fulfilling tailor, or nil when unbound.
func (o *Order) TailorID() *kernel.UUID {
	return o.tailorID
}

// ServiceType returns the requested tailoring service.
func (o *Order) ServiceType() ServiceType {
	return o.serviceType
}

// GarmentType returns the garment description.
func (o *Order) GarmentType() string {
	return o.garmentType
}

// Quantity returns the number of garments ordered.
func (o *Order) Quantity() int {
	return o.quantity
}

// EstimatedPrice returns the price quoted at placement.
func (o *Order) EstimatedPrice() float64 {
	return o.estimatedPrice
}

// FinalPrice returns the settled price, or nil while unsettled.
// Settlement is owned by the payment collaborator, not this core.
func (o *Order) FinalPrice() *float64 {
	return o.finalPrice
}

// MeasurementRef returns the opaque measurement snapshot reference.
func (o *Order) MeasurementRef() string {
	return o.measurementRef
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// FinalFittingDate returns the scheduled fitting date, or nil when unscheduled.
func (o *Order) FinalFittingDate() *time.Time {
	return o.finalFittingDate
}

// DeliveryDate returns the delivery date requested at placement, or nil.
func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CompletedAt returns the completion timestamp, or nil while uncompleted.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// IsOwnedBy reports whether the given actor, acting in the given role, is a
// party to this order. Any mismatch, an unknown role, or an unbound tailor
// fails closed.
func (o *Order) IsOwnedBy(actorID kernel.UUID, role Role) bool {
	switch role {
	case RoleCustomer:
		return o.customerID.IsEqual(actorID)
	case RoleTailor:
		return o.tailorID != nil && o.tailorID.IsEqual(actorID)
	default:
		return false
	}
}

// ChangeStatus moves the order along one edge of the lifecycle graph.
//
// Returns *InvalidTransitionError (wrapping ErrInvalidTransition) when no edge
// from the current status to target exists; terminal statuses therefore reject
// every change. On entering Completed the completion timestamp is recorded.
//
// Note: role permission is not checked here. The lifecycle engine consults
// the AuthorizationPolicy before calling ChangeStatus.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.updatedAt = now
	if newStatus == Completed {
		o.completedAt = &now
	}
	return nil
}

// ScheduleFitting records the final fitting date. The field is independent of
// the lifecycle: setting it implies no status change and writes no history.
func (o *Order) ScheduleFitting(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("fitting date")
	}

	utc := at.UTC()
	o.finalFittingDate = &utc
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setTailorID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.tailorID = id
	return nil
}

func (o *Order) setServiceType(st ServiceType) error {
	if err := st.Validate(); err != nil {
		return err
	}
	o.serviceType = st
	return nil
}

func (o *Order) setGarmentType(garmentType string) error {
	if strings.TrimSpace(garmentType) == "" {
		return ErrGarmentTypeIsRequired
	}
	o.garmentType = garmentType
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setMeasurementRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return ErrMeasurementRefIsRequired
	}
	o.measurementRef = ref
	return nil
}

func (o *Order) setEstimatedPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated price is invalid",
			fmt.Errorf("%f is negative", price))
	}
	o.estimatedPrice = price
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// numberFromID derives the human-readable order number from the order id,
// so it is stable without a second generator.
func numberFromID(id kernel.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return "ORD-" + strings.ToUpper(hex[:8])
}
