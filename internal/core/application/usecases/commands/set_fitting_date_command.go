package commands

import (
	"errors"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/errs"
	"tailoring/internal/pkg/guard"
)

var ErrSetFittingDateCommandIsNotConstructed = errors.New(
	"SetFittingDateCommand must be created via NewSetFittingDateCommand constructor",
)

// SetFittingDateCommand represents the tailor scheduling the final fitting.
// The fitting date lives outside the lifecycle: setting it changes no status
// and writes no history.
type SetFittingDateCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	tailorID    kernel.UUID
	fittingDate time.Time

	guard guard.ConstructorGuard
}

// NewSetFittingDateCommand creates a command to schedule the final fitting.
// Validates the identifiers and that a date was supplied.
func NewSetFittingDateCommand(
	orderID kernel.UUID,
	tailorID kernel.UUID,
	fittingDate time.Time,
) (SetFittingDateCommand, error) {
	fittingCommand := SetFittingDateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		fittingCommand.setOrderID(orderID),
		fittingCommand.setTailorID(tailorID),
		fittingCommand.setFittingDate(fittingDate),
	); err != nil {
		return SetFittingDateCommand{}, err
	}

	return fittingCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetFittingDateCommandIsNotConstructed if validation fails.
func (c SetFittingDateCommand) Validate() error {
	return c.guard.Validate(ErrSetFittingDateCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to schedule.
func (c SetFittingDateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TailorID returns the identifier of the scheduling tailor.
func (c SetFittingDateCommand) TailorID() kernel.UUID {
	return c.tailorID
}

// FittingDate returns the final fitting date to record.
func (c SetFittingDateCommand) FittingDate() time.Time {
	return c.fittingDate
}

func (c *SetFittingDateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetFittingDateCommand) setTailorID(tailorID kernel.UUID) error {
	if err := tailorID.Validate(); err != nil {
		return err
	}

	c.tailorID = tailorID
	return nil
}

func (c *SetFittingDateCommand) setFittingDate(fittingDate time.Time) error {
	if fittingDate.IsZero() {
		return errs.NewValueIsRequiredError("fittingDate")
	}

	c.fittingDate = fittingDate
	return nil
}
