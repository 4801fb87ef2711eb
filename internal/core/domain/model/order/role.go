package order

import (
	"fmt"

	"tailoring/internal/pkg/errs"
)

// Role identifies which party is acting on an order. Transition permissions
// and ownership checks are keyed by Role, which is always passed explicitly
// as an argument, never read from ambient request state.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the party that placed the order.
	RoleCustomer

	// RoleTailor is the vendor fulfilling the order.
	RoleTailor
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleTailor:   "tailor",
	}
}

// RoleFromString parses the persistence/API representation of a role.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "tailor":
		return RoleTailor, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%q is not a valid actor role", s),
		)
	}
}

// Validate checks that the Role is customer or tailor.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleTailor {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid actor role", r),
		)
	}
	return nil
}

// String returns the lowercase name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
