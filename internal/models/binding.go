package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// UserBinding maps a user to the single vehicle tag currently assigned
// to them. Created on registration, deleted on drop-off.
type UserBinding struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"user_id" json:"user_id"`
	VehicleTag  string             `bson:"vehicle_tag" json:"vehicle_tag"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
