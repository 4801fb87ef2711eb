// Package confirmation provides the delivery confirmation aggregate: a
// short-lived numeric code bound to an order that gates the tailor-driven
// completion at physical handoff. The customer receives the code out of band
// and reveals it to the tailor only when the garment changes hands.
package confirmation

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/pkg/errs"
)

const (
	// CodeLength is the number of digits in a confirmation code.
	CodeLength = 6

	// MaxAttempts is the number of failed verifications allowed before the
	// code is locked and a fresh one must be issued.
	MaxAttempts = 3

	// TTL is how long an issued code stays valid.
	TTL = 10 * time.Minute
)

var (
	// ErrConfirmationIsNotConstructed is returned when a DeliveryConfirmation
	// was not created via NewDeliveryConfirmation or RestoreDeliveryConfirmation.
	ErrConfirmationIsNotConstructed = errors.New(
		"DeliveryConfirmation must be created via NewDeliveryConfirmation or RestoreDeliveryConfirmation")

	// ErrConfirmationExpired indicates the code's validity window has passed.
	// Expiry is enforced lazily at verification time; no background reaper exists.
	ErrConfirmationExpired = errors.New("delivery confirmation code expired")

	// ErrTooManyAttempts indicates the failed-verification budget is exhausted.
	// Only re-issuing a code resets the counter.
	ErrTooManyAttempts = errors.New("too many delivery confirmation attempts")
)

// DeliveryConfirmation is the aggregate for one order's handoff code. At most
// one active (unconsumed, unexpired) confirmation exists per order; issuing a
// new one replaces and thereby invalidates the previous.
type DeliveryConfirmation struct {
	orderID      kernel.UUID
	code         string
	expiresAt    time.Time
	attemptCount int
	consumed     bool

	isConstructed bool
}

// NewDeliveryConfirmation issues a fresh confirmation for the order: a
// uniformly random 6-digit code (leading zeros preserved), a 10-minute
// validity window, and a zeroed attempt counter.
func NewDeliveryConfirmation(orderID kernel.UUID) (*DeliveryConfirmation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	return &DeliveryConfirmation{
		orderID:       orderID,
		code:          code,
		expiresAt:     time.Now().UTC().Add(TTL),
		isConstructed: true,
	}, nil
}

// RestoreDeliveryConfirmation reconstructs a confirmation from persistence.
func RestoreDeliveryConfirmation(
	orderID kernel.UUID,
	code string,
	expiresAt time.Time,
	attemptCount int,
	consumed bool,
) (*DeliveryConfirmation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if len(code) != CodeLength {
		return nil, errs.NewValueIsInvalidErrorWithCause("confirmation code is invalid",
			fmt.Errorf("code length is %d, want %d", len(code), CodeLength))
	}
	if attemptCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attemptCount", attemptCount, 0, MaxAttempts)
	}

	return &DeliveryConfirmation{
		orderID:       orderID,
		code:          code,
		expiresAt:     expiresAt,
		attemptCount:  attemptCount,
		consumed:      consumed,
		isConstructed: true,
	}, nil
}

// Validate ensures the confirmation was created through a constructor.
func (c *DeliveryConfirmation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConfirmationIsNotConstructed
	}
	return nil
}

// OrderID returns the order this confirmation is bound to.
func (c *DeliveryConfirmation) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the numeric code as issued, leading zeros included.
func (c *DeliveryConfirmation) Code() string {
	return c.code
}

// ExpiresAt returns the end of the validity window.
func (c *DeliveryConfirmation) ExpiresAt() time.Time {
	return c.expiresAt
}

// AttemptCount returns how many failed verifications were registered.
func (c *DeliveryConfirmation) AttemptCount() int {
	return c.attemptCount
}

// Consumed reports whether the code was already used to complete the order.
func (c *DeliveryConfirmation) Consumed() bool {
	return c.consumed
}

// IsExpired reports whether the validity window has passed at the given instant.
func (c *DeliveryConfirmation) IsExpired(now time.Time) bool {
	return !now.Before(c.expiresAt)
}

// AttemptsExhausted reports whether the failed-verification budget is used up.
func (c *DeliveryConfirmation) AttemptsExhausted() bool {
	return c.attemptCount >= MaxAttempts
}

// Matches compares a supplied code against the issued one in constant time,
// so verification latency leaks nothing about matching prefixes.
func (c *DeliveryConfirmation) Matches(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.code), []byte(code)) == 1
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	limit := big.NewInt(1)
	for range CodeLength {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}
