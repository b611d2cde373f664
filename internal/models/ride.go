package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Ride is one rental trip on a vehicle. A ride with no end time is
// open; the ledger allows at most one open ride per vehicle tag.
type Ride struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RideID     string             `bson:"ride_id" json:"ride_id"`
	VehicleTag string             `bson:"vehicle_tag" json:"vehicle_tag"`
	UserID     string             `bson:"user_id" json:"user_id"`
	StartTime  time.Time          `bson:"start_time" json:"start_time"`
	EndTime    *time.Time         `bson:"end_time,omitempty" json:"end_time,omitempty"`
	// Open mirrors EndTime == nil; it is the key of the partial unique
	// index that enforces one open ride per tag in MongoDB.
	Open bool `bson:"open" json:"open"`
}

// IsOpen reports whether the ride has not been closed yet.
func (r *Ride) IsOpen() bool {
	return r.EndTime == nil
}
