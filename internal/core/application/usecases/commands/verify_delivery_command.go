package commands

import (
	"errors"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/guard"
)

var (
	ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
		"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
	)
	ErrConfirmationCodeIsRequired = errors.New("confirmation code is required")
)

// VerifyDeliveryCommand represents the tailor's attempt to complete an order
// at physical handoff by presenting the code the customer revealed.
//
// Example:
//
//	cmd, err := NewVerifyDeliveryCommand(orderID, tailorID, "042917")
//	if err != nil {
//	    return fmt.Errorf("invalid verification request: %w", err)
//	}
type VerifyDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	tailorID kernel.UUID
	code     string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates a command to verify a delivery code.
// Validates the identifiers and that a code was supplied at all. A wrong or
// malformed code is not a constructor error: it must reach the handler and
// count as a failed attempt.
func NewVerifyDeliveryCommand(
	orderID kernel.UUID,
	tailorID kernel.UUID,
	code string,
) (VerifyDeliveryCommand, error) {
	verifyCommand := VerifyDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		verifyCommand.setOrderID(orderID),
		verifyCommand.setTailorID(tailorID),
		verifyCommand.setCode(code),
	); err != nil {
		return VerifyDeliveryCommand{}, err
	}

	return verifyCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyDeliveryCommandIsNotConstructed if validation fails.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being handed off.
func (c VerifyDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TailorID returns the identifier of the verifying tailor.
func (c VerifyDeliveryCommand) TailorID() kernel.UUID {
	return c.tailorID
}

// Code returns the code as supplied by the tailor.
func (c VerifyDeliveryCommand) Code() string {
	return c.code
}

func (c *VerifyDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyDeliveryCommand) setTailorID(tailorID kernel.UUID) error {
	if err := tailorID.Validate(); err != nil {
		return err
	}

	c.tailorID = tailorID
	return nil
}

func (c *VerifyDeliveryCommand) setCode(code string) error {
	if code == "" {
		return ErrConfirmationCodeIsRequired
	}

	c.code = code
	return nil
}
