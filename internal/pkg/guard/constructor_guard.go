// Package guard provides a defensive pattern that ensures value objects,
// commands, and entities are only created through their designated
// constructor functions, so zero-value instances never pass validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation
// error is supplied for an object that was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether its embedding struct was created through
// a constructor function. The zero value fails validation; a guard produced
// by NewConstructorGuard passes.
//
// Example:
//
//	type Command struct {
//	    field string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewCommand(field string) (Command, error) {
//	    return Command{field: field, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Command) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was created through its constructor,
// otherwise the supplied validationError (or ErrDefaultConstructorGuard when nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
