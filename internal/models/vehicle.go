package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Vehicle represents a rentable fleet vehicle. The tag is the unique
// identifier physically affixed to the vehicle and doubles as the code
// compared during unlock.
type Vehicle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Tag       string             `bson:"tag" json:"tag"`
	Locked    bool               `bson:"locked" json:"locked"`
	Assigned  bool               `bson:"assigned" json:"assigned"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// NewVehicle returns an unassigned, locked vehicle for the given tag.
func NewVehicle(tag string) Vehicle {
	return Vehicle{
		Tag:       tag,
		Locked:    true,
		Assigned:  false,
		CreatedAt: time.Now().UTC(),
	}
}

// LockStateConsistent reports whether the vehicle satisfies the fleet
// invariant: an unassigned vehicle is never left unlocked.
func (v *Vehicle) LockStateConsistent() bool {
	return v.Assigned || v.Locked
}

// Available reports whether the vehicle can be claimed by a new rental.
func (v *Vehicle) Available() bool {
	return !v.Assigned
}
