package order

import (
	"errors"
	"fmt"

	"tailoring/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError,
// enabling classification with errors.Is.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a rejected status change, carrying both the
// current and the attempted status so callers can explain the refusal.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a tailoring order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	pending ──> accepted ──> in_progress ──> ready ──> completed
//	   │            │             │
//	   └────────────┴─────────────┴──> cancelled
//
// completed and cancelled are absorbing: no edges leave them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned when an order is placed.
	Pending

	// Accepted indicates the tailor has taken on the order.
	Accepted

	// InProgress indicates the tailor has started the work.
	InProgress

	// Ready indicates the garment is finished and awaiting handoff.
	// Entering this status triggers issuance of a delivery confirmation code.
	Ready

	// Completed indicates delivery was confirmed. Terminal.
	Completed

	// Cancelled indicates the order was called off before completion. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Accepted:   "accepted",
		InProgress: "in_progress",
		Ready:      "ready",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Accepted:   "accepted",
		InProgress: "in_progress",
		Ready:      "ready",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// transitionGraph enumerates every legal edge of the lifecycle state machine.
// Terminal statuses are absent: nothing leaves completed or cancelled.
func transitionGraph() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Accepted, Cancelled},
		Accepted:   {InProgress, Cancelled},
		InProgress: {Ready, Cancelled},
		Ready:      {Completed},
	}
}

// StatusFromString parses the persistence/API representation of a status.
// Returns an error for any string outside the valid vocabulary;
// "unknown" is not accepted.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status value belongs to the valid vocabulary.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the snake_case name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is absorbing: once an order reaches
// completed or cancelled, no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether an edge from s to target exists in the
// lifecycle graph. This is the structural check only; role-based permission
// is the AuthorizationPolicy's concern.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitionGraph()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to target and returns the new status.
//
// Returns:
//   - (target, nil) when the lifecycle graph contains the edge
//   - (Unknown, *InvalidTransitionError) otherwise, reporting both statuses
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}
