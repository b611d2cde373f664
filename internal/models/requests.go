package models

import "time"

// RegisterRequest asks for a vehicle to be assigned to a new user.
type RegisterRequest struct {
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// RegisterResponse carries the assigned tag and its QR rendering. The
// image is best effort; clients must tolerate an empty value.
type RegisterResponse struct {
	Tag         string `json:"tag"`
	QRPNGBase64 string `json:"qr_png_base64,omitempty"`
}

// ScanRequest submits a scanned tag for unlock verification.
type ScanRequest struct {
	UserID     string `json:"user_id"`
	ScannedTag string `json:"scanned_tag"`
}

// ScanResponse reports a successful unlock.
type ScanResponse struct {
	Unlocked bool `json:"unlocked"`
}

// StartRideRequest opens a ride on an unlocked vehicle.
type StartRideRequest struct {
	Tag    string `json:"tag"`
	UserID string `json:"user_id"`
}

// StartRideResponse carries the opened ride.
type StartRideResponse struct {
	RideID    string    `json:"ride_id"`
	StartTime time.Time `json:"start_time"`
}

// EndRideRequest closes the open ride on a vehicle.
type EndRideRequest struct {
	Tag string `json:"tag"`
}

// EndRideResponse carries the recorded end time.
type EndRideResponse struct {
	EndTime time.Time `json:"end_time"`
}

// DropRequest returns a user's vehicle to the fleet.
type DropRequest struct {
	UserID string `json:"user_id"`
}

// DropResponse carries the tag that was released.
type DropResponse struct {
	Tag string `json:"tag"`
}

// ErrorResponse is the JSON error body. Kind is the stable field for
// clients to branch on.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  Kind   `json:"kind"`
}
