package rental

import (
	"context"
	"errors"

	"github.com/ukydev/ev-rental/internal/db"
	"github.com/ukydev/ev-rental/internal/models"
)

// Verifier authenticates a physical unlock. It compares a scanned tag
// against the user's binding and the registry's record, and only on
// full success performs the single write: the unlock itself.
type Verifier struct {
	bindings db.BindingStore
	registry *Registry
}

// NewVerifier returns a verifier over the given binding store and
// fleet registry.
func NewVerifier(bindings db.BindingStore, registry *Registry) *Verifier {
	return &Verifier{bindings: bindings, registry: registry}
}

// Verify checks the scanned tag and unlocks the vehicle. Each failure
// mode is distinct; no vehicle state is touched before every check has
// passed.
func (v *Verifier) Verify(ctx context.Context, userID, scannedTag string) error {
	binding, err := v.bindings.FindBindingByUserID(ctx, userID)
	if err != nil {
		return err
	}
	// Guarded against even though bindings are created with a tag.
	if binding.VehicleTag == "" {
		return models.ErrNoVehicleAssigned
	}
	if scannedTag != binding.VehicleTag {
		return models.ErrTagMismatch
	}
	vehicle, err := v.registry.Get(ctx, scannedTag)
	if err != nil {
		if errors.Is(err, models.ErrVehicleNotFound) {
			return models.ErrUnknownTag
		}
		return err
	}
	if !vehicle.Locked {
		return models.ErrAlreadyUnlocked
	}
	return v.registry.Unlock(ctx, scannedTag)
}
