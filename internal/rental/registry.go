package rental

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-rental/internal/db"
	"github.com/ukydev/ev-rental/internal/models"
)

// Registry is the fleet registry: the sole writer of vehicle
// assignment and lock state. Every transition is one atomic store
// operation, so concurrent requests on the same tag serialize.
type Registry struct {
	vehicles db.VehicleStore
	order    db.SelectOrder
}

// NewRegistry returns a registry over the given vehicle store using
// the given selection policy for AssignAny.
func NewRegistry(vehicles db.VehicleStore, order db.SelectOrder) *Registry {
	return &Registry{vehicles: vehicles, order: order}
}

// AssignAny claims one available vehicle and returns its tag. The
// claimed vehicle stays locked. Fails with models.ErrNoVehicleAvailable
// when the fleet is exhausted.
func (r *Registry) AssignAny(ctx context.Context) (string, error) {
	v, err := r.vehicles.ClaimAvailable(ctx, r.order)
	if err != nil {
		return "", err
	}
	log.WithField("tag", v.Tag).Info("Vehicle assigned")
	return v.Tag, nil
}

// Unlock unlocks an assigned, locked vehicle. Fails with
// models.ErrNotAssigned or models.ErrAlreadyUnlocked when the
// precondition does not hold.
func (r *Registry) Unlock(ctx context.Context, tag string) error {
	if err := r.vehicles.Unlock(ctx, tag); err != nil {
		return err
	}
	log.WithField("tag", tag).Info("Vehicle unlocked")
	return nil
}

// Lock locks the vehicle regardless of its prior lock state.
func (r *Registry) Lock(ctx context.Context, tag string) error {
	if err := r.vehicles.Lock(ctx, tag); err != nil {
		return err
	}
	log.WithField("tag", tag).Info("Vehicle locked")
	return nil
}

// Release returns the vehicle to the available pool. The vehicle is
// always re-locked, even if a rider left it unlocked.
func (r *Registry) Release(ctx context.Context, tag string) error {
	if err := r.vehicles.Release(ctx, tag); err != nil {
		return err
	}
	log.WithField("tag", tag).Info("Vehicle released")
	return nil
}

// Get returns the vehicle for the tag, or models.ErrVehicleNotFound.
func (r *Registry) Get(ctx context.Context, tag string) (*models.Vehicle, error) {
	return r.vehicles.FindVehicleByTag(ctx, tag)
}
