package rental

import (
	"context"
	"time"

	"github.com/ukydev/ev-rental/internal/db"
	"github.com/ukydev/ev-rental/internal/models"
)

// Bindings owns the user-to-vehicle assignment relation. A user holds
// at most one vehicle at a time.
type Bindings struct {
	store db.BindingStore
}

// NewBindings returns a binding service over the given store.
func NewBindings(store db.BindingStore) *Bindings {
	return &Bindings{store: store}
}

// Bind records that the vehicle tag is assigned to the user. Fails
// with models.ErrAlreadyBound if the user already holds a vehicle.
func (b *Bindings) Bind(ctx context.Context, userID, tag, phoneNumber string) error {
	return b.store.InsertBinding(ctx, models.UserBinding{
		UserID:      userID,
		VehicleTag:  tag,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
	})
}

// Lookup returns the user's binding, or models.ErrUserNotFound.
func (b *Bindings) Lookup(ctx context.Context, userID string) (*models.UserBinding, error) {
	return b.store.FindBindingByUserID(ctx, userID)
}

// Unbind removes the user's binding and returns it. Fails with
// models.ErrNotBound when none existed.
func (b *Bindings) Unbind(ctx context.Context, userID string) (*models.UserBinding, error) {
	return b.store.DeleteBinding(ctx, userID)
}
