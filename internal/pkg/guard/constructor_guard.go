// Package guard provides ConstructorGuard, a marker embedded in value objects
// and commands so that zero values can be told apart from instances built by
// their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. Embed it and call
// Validate from the owner's Validate method:
//
//	type RentalPeriod struct {
//	    startDate string
//	    guard     guard.ConstructorGuard
//	}
//
//	func (p RentalPeriod) Validate() error {
//	    return p.guard.Validate(ErrRentalPeriodIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
