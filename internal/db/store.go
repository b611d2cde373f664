package db

import (
	"context"
	"time"

	"github.com/ukydev/ev-rental/internal/models"
)

// SelectOrder is the policy for choosing which available vehicle a
// claim picks when more than one qualifies.
type SelectOrder int

const (
	// OrderLowestTag claims the lexicographically smallest available
	// tag. This is the default policy; it makes claims deterministic.
	OrderLowestTag SelectOrder = iota
)

// VehicleStore persists vehicles and applies their state transitions
// atomically. One logical operation per method: concurrent calls
// touching the same tag must not interleave their read-modify-write.
type VehicleStore interface {
	InsertVehicle(ctx context.Context, v models.Vehicle) error
	FindVehicleByTag(ctx context.Context, tag string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)

	// ClaimAvailable atomically selects one unassigned vehicle per the
	// given order and marks it assigned (still locked). Returns
	// models.ErrNoVehicleAvailable when the fleet is exhausted.
	ClaimAvailable(ctx context.Context, order SelectOrder) (*models.Vehicle, error)

	// Unlock sets locked=false for an assigned, locked vehicle.
	// Returns models.ErrUnknownTag, models.ErrNotAssigned or
	// models.ErrAlreadyUnlocked when the precondition fails.
	Unlock(ctx context.Context, tag string) error

	// Lock sets locked=true regardless of prior lock state.
	Lock(ctx context.Context, tag string) error

	// Release sets assigned=false and re-locks the vehicle.
	Release(ctx context.Context, tag string) error
}

// BindingStore persists user-to-vehicle bindings. Each user holds at
// most one binding; each tag appears in at most one binding.
type BindingStore interface {
	// InsertBinding creates a binding; models.ErrAlreadyBound if the
	// user already has one.
	InsertBinding(ctx context.Context, b models.UserBinding) error

	// FindBindingByUserID returns models.ErrUserNotFound when absent.
	FindBindingByUserID(ctx context.Context, userID string) (*models.UserBinding, error)

	// DeleteBinding removes and returns the user's binding;
	// models.ErrNotBound when none existed.
	DeleteBinding(ctx context.Context, userID string) (*models.UserBinding, error)
}

// RideStore persists ride records. Rides are closed, never deleted.
type RideStore interface {
	// InsertOpenRide records a new open ride; models.ErrRideAlreadyActive
	// if an open ride already exists for the vehicle tag.
	InsertOpenRide(ctx context.Context, ride models.Ride) error

	// CloseRide stamps the end time on the unique open ride for the
	// tag and returns the closed record; models.ErrNoActiveRide when
	// there is none.
	CloseRide(ctx context.Context, tag string, end time.Time) (*models.Ride, error)

	// FindOpenRide returns models.ErrNoActiveRide when there is none.
	FindOpenRide(ctx context.Context, tag string) (*models.Ride, error)
}
