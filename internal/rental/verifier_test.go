package rental

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/ev-rental/internal/db"
	"github.com/ukydev/ev-rental/internal/models"
)

type verifierFixture struct {
	verifier *Verifier
	registry *Registry
	bindings *db.MemoryBindings
}

// newVerifierFixture seeds one assigned, locked EV-1 bound to alice.
func newVerifierFixture(t *testing.T) *verifierFixture {
	t.Helper()
	ctx := context.Background()
	vehicles := db.NewMemoryVehicles()
	require.NoError(t, vehicles.InsertVehicle(ctx, models.NewVehicle("EV-1")))
	registry := NewRegistry(vehicles, db.OrderLowestTag)
	_, err := registry.AssignAny(ctx)
	require.NoError(t, err)

	bindings := db.NewMemoryBindings()
	require.NoError(t, bindings.InsertBinding(ctx, models.UserBinding{UserID: "alice", VehicleTag: "EV-1"}))

	return &verifierFixture{
		verifier: NewVerifier(bindings, registry),
		registry: registry,
		bindings: bindings,
	}
}

func (f *verifierFixture) lockedState(t *testing.T) bool {
	t.Helper()
	v, err := f.registry.Get(context.Background(), "EV-1")
	require.NoError(t, err)
	return v.Locked
}

func TestVerifier_Success(t *testing.T) {
	f := newVerifierFixture(t)
	require.NoError(t, f.verifier.Verify(context.Background(), "alice", "EV-1"))
	assert.False(t, f.lockedState(t), "verified scan must unlock the vehicle")
}

func TestVerifier_UserNotFound(t *testing.T) {
	f := newVerifierFixture(t)
	err := f.verifier.Verify(context.Background(), "mallory", "EV-1")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.True(t, f.lockedState(t), "failed scan must not touch the vehicle")
}

func TestVerifier_NoVehicleAssigned(t *testing.T) {
	f := newVerifierFixture(t)
	ctx := context.Background()
	require.NoError(t, f.bindings.InsertBinding(ctx, models.UserBinding{UserID: "bob", VehicleTag: ""}))

	err := f.verifier.Verify(ctx, "bob", "EV-1")
	assert.ErrorIs(t, err, models.ErrNoVehicleAssigned)
	assert.True(t, f.lockedState(t))
}

func TestVerifier_TagMismatch(t *testing.T) {
	f := newVerifierFixture(t)
	err := f.verifier.Verify(context.Background(), "alice", "EV-2")
	assert.ErrorIs(t, err, models.ErrTagMismatch)
	assert.True(t, f.lockedState(t), "mismatched scan must leave lock state unchanged")
}

func TestVerifier_UnknownTag(t *testing.T) {
	f := newVerifierFixture(t)
	ctx := context.Background()
	// Binding points at a tag the registry has never seen.
	require.NoError(t, f.bindings.InsertBinding(ctx, models.UserBinding{UserID: "carol", VehicleTag: "EV-GHOST"}))

	err := f.verifier.Verify(ctx, "carol", "EV-GHOST")
	assert.ErrorIs(t, err, models.ErrUnknownTag)
}

func TestVerifier_AlreadyUnlocked(t *testing.T) {
	f := newVerifierFixture(t)
	ctx := context.Background()
	require.NoError(t, f.verifier.Verify(ctx, "alice", "EV-1"))

	err := f.verifier.Verify(ctx, "alice", "EV-1")
	assert.ErrorIs(t, err, models.ErrAlreadyUnlocked)
}
