package rental

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-rental/internal/db"
	"github.com/ukydev/ev-rental/internal/models"
)

// Ledger records ride start and end events. It is the sole writer of
// ride records and never mutates vehicle state; re-locking after a
// ride is the orchestrating layer's job.
type Ledger struct {
	rides    db.RideStore
	registry *Registry
}

// NewLedger returns a ledger over the given ride store. The registry
// is read-only here: the ledger consults it to refuse starts on a
// locked vehicle.
func NewLedger(rides db.RideStore, registry *Registry) *Ledger {
	return &Ledger{rides: rides, registry: registry}
}

// Open starts a ride on an unlocked vehicle. Fails with
// models.ErrVehicleLocked if the vehicle is still locked and
// models.ErrRideAlreadyActive if an open ride exists for the tag.
func (l *Ledger) Open(ctx context.Context, tag, userID string) (*models.Ride, error) {
	vehicle, err := l.registry.Get(ctx, tag)
	if err != nil {
		if errors.Is(err, models.ErrVehicleNotFound) {
			return nil, models.ErrUnknownTag
		}
		return nil, err
	}
	if vehicle.Locked {
		return nil, models.ErrVehicleLocked
	}
	ride := models.Ride{
		RideID:     uuid.NewString(),
		VehicleTag: tag,
		UserID:     userID,
		StartTime:  time.Now().UTC(),
	}
	if err := l.rides.InsertOpenRide(ctx, ride); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"tag": tag, "ride_id": ride.RideID}).Info("Ride started")
	return &ride, nil
}

// Close ends the unique open ride for the tag and returns the closed
// record. Fails with models.ErrNoActiveRide when there is none.
func (l *Ledger) Close(ctx context.Context, tag string) (*models.Ride, error) {
	ride, err := l.rides.CloseRide(ctx, tag, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"tag": tag, "ride_id": ride.RideID}).Info("Ride ended")
	return ride, nil
}
