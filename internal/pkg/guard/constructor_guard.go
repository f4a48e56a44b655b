// Package guard provides the constructor-guard pattern used by domain objects,
// commands, and queries to distinguish properly constructed instances from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// supplied for an object that was not created through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a guard in a struct lets
// Validate detect zero-value instances that bypassed construction, keeping
// domain invariants intact.
//
// Example usage:
//
//	var ErrTicketNotConstructed = errors.New("Ticket must be created via NewTicket")
//
//	type Ticket struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTicket(id kernel.UUID) Ticket {
//	    return Ticket{id: id, guard: guard.NewConstructorGuard()}
//	}
//
//	func (t Ticket) Validate() error {
//	    return t.guard.Validate(ErrTicketNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it inside every constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
