package models

import (
	"errors"
	"fmt"
)

// Kind classifies a rental failure so callers can branch on the class
// of error instead of matching message strings.
type Kind string

const (
	// KindNotFound means the referenced entity does not exist.
	KindNotFound Kind = "not_found"
	// KindConflict means the operation would violate a state invariant.
	KindConflict Kind = "conflict"
	// KindPrecondition means the operation requires a prior state that
	// is not met.
	KindPrecondition Kind = "precondition_failed"
	// KindUnavailable means the backing store could not be reached or
	// failed unexpectedly.
	KindUnavailable Kind = "store_unavailable"
)

// Error is a domain failure carrying its kind.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// Fleet registry failures.
var (
	ErrNoVehicleAvailable = &Error{KindConflict, "no vehicle available"}
	ErrDuplicateTag       = &Error{KindConflict, "vehicle tag already exists"}
	ErrVehicleNotFound    = &Error{KindNotFound, "vehicle not found"}
	ErrNotAssigned        = &Error{KindPrecondition, "vehicle is not assigned"}
	ErrAlreadyUnlocked    = &Error{KindConflict, "vehicle is already unlocked"}
)

// Tag verification failures.
var (
	ErrUserNotFound      = &Error{KindNotFound, "user not found"}
	ErrNoVehicleAssigned = &Error{KindPrecondition, "no vehicle assigned to this user"}
	ErrTagMismatch       = &Error{KindPrecondition, "scanned tag does not match the assigned vehicle"}
	ErrUnknownTag        = &Error{KindNotFound, "unknown vehicle tag"}
)

// Ride ledger failures.
var (
	ErrVehicleLocked     = &Error{KindPrecondition, "vehicle is locked"}
	ErrRideAlreadyActive = &Error{KindConflict, "an active ride already exists for this vehicle"}
	ErrNoActiveRide      = &Error{KindPrecondition, "no active ride for this vehicle"}
)

// User binding failures.
var (
	ErrAlreadyBound = &Error{KindConflict, "user already has an assigned vehicle"}
	ErrNotBound     = &Error{KindPrecondition, "user has no assigned vehicle"}
)

// ErrStoreUnavailable wraps unexpected store failures; it must never be
// conflated with domain conflicts.
var ErrStoreUnavailable = &Error{KindUnavailable, "store unavailable"}

// Unavailable wraps a store I/O error as ErrStoreUnavailable while
// keeping the cause in the message.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// KindOf returns the kind of err. Errors that do not carry a kind are
// treated as store failures.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnavailable
}
