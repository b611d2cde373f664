package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-rental/internal/models"
	"github.com/ukydev/ev-rental/internal/rental"
)

// RentalHandler exposes the rental lifecycle over HTTP.
type RentalHandler struct {
	service *rental.Service
}

// NewRentalHandler creates a handler over the rental service.
func NewRentalHandler(service *rental.Service) *RentalHandler {
	return &RentalHandler{service: service}
}

// Register handles POST /api/register.
func (h *RentalHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	resp, err := h.service.Register(r.Context(), req.UserID, req.PhoneNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Scan handles POST /api/scan.
func (h *RentalHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.ScanRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" || req.ScannedTag == "" {
		http.Error(w, "user_id and scanned_tag are required", http.StatusBadRequest)
		return
	}
	if err := h.service.Scan(r.Context(), req.UserID, req.ScannedTag); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ScanResponse{Unlocked: true})
}

// StartRide handles POST /api/rides/start.
func (h *RentalHandler) StartRide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.StartRideRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Tag == "" || req.UserID == "" {
		http.Error(w, "tag and user_id are required", http.StatusBadRequest)
		return
	}
	ride, err := h.service.StartRide(r.Context(), req.Tag, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.StartRideResponse{
		RideID:    ride.RideID,
		StartTime: ride.StartTime,
	})
}

// EndRide handles POST /api/rides/end.
func (h *RentalHandler) EndRide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.EndRideRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Tag == "" {
		http.Error(w, "tag is required", http.StatusBadRequest)
		return
	}
	ride, err := h.service.EndRide(r.Context(), req.Tag)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.EndRideResponse{EndTime: *ride.EndTime})
}

// Drop handles POST /api/drop.
func (h *RentalHandler) Drop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.DropRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	tag, err := h.service.DropVehicle(r.Context(), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DropResponse{Tag: tag})
}

// Vehicle handles GET /api/vehicles/{tag}.
func (h *RentalHandler) Vehicle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tag := strings.TrimPrefix(r.URL.Path, "/api/vehicles/")
	if tag == "" || strings.Contains(tag, "/") {
		http.Error(w, "vehicle tag is required", http.StatusBadRequest)
		return
	}
	vehicle, err := h.service.Vehicle(r.Context(), tag)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Health handles GET /healthz.
func (h *RentalHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func decode(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the error kind to an HTTP status and writes the
// JSON error body. Clients branch on kind, not on the message.
func writeError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindConflict:
		status = http.StatusConflict
	case models.KindPrecondition:
		status = http.StatusPreconditionFailed
	case models.KindUnavailable:
		status = http.StatusServiceUnavailable
	}
	if kind == models.KindUnavailable {
		log.WithError(err).Error("Store failure")
	}
	writeJSON(w, status, models.ErrorResponse{Error: err.Error(), Kind: kind})
}
