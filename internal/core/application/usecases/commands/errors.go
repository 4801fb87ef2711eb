package commands

import (
	"errors"
	"fmt"

	"tailoring/internal/pkg/errs"
)

var (
	// ErrOrderAccessForbidden is returned when the acting party is not bound
	// to the order in the role it claims. Existence of the order is still
	// revealed; only the action is refused.
	ErrOrderAccessForbidden = errors.New("actor is not a party to this order")

	// ErrOrderStateStale is returned when a concurrent writer moved the order
	// between the read and the write. The caller should re-read and retry.
	ErrOrderStateStale = errors.New("order was modified concurrently, re-read and retry")

	// ErrCodeMismatch is returned when a supplied confirmation code does not
	// match the issued one and attempts remain.
	ErrCodeMismatch = errors.New("delivery confirmation code does not match")

	// ErrStorageFailure wraps infrastructure errors so callers can map every
	// backend problem to one outcome without inspecting driver internals.
	ErrStorageFailure = errors.New("storage failure")
)

// wrapStorage classifies a repository error: not-found passes through
// untouched, everything else is an infrastructure fault.
func wrapStorage(err error) error {
	if err == nil || errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}
