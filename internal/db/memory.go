package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ukydev/ev-rental/internal/models"
)

// The in-memory backends mirror the MongoDB semantics exactly. Each
// store guards its own map with a single mutex, so every method is one
// atomic read-modify-write and per-tag operations are linearizable.

// MemoryVehicles is an in-process VehicleStore.
type MemoryVehicles struct {
	mu       sync.Mutex
	vehicles map[string]*models.Vehicle
}

// NewMemoryVehicles returns an empty in-memory vehicle store.
func NewMemoryVehicles() *MemoryVehicles {
	return &MemoryVehicles{vehicles: make(map[string]*models.Vehicle)}
}

func (s *MemoryVehicles) InsertVehicle(ctx context.Context, v models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[v.Tag]; ok {
		return models.ErrDuplicateTag
	}
	copied := v
	s.vehicles[v.Tag] = &copied
	return nil
}

func (s *MemoryVehicles) FindVehicleByTag(ctx context.Context, tag string) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[tag]
	if !ok {
		return nil, models.ErrVehicleNotFound
	}
	copied := *v
	return &copied, nil
}

func (s *MemoryVehicles) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

// ClaimAvailable scans tags in ascending order so the claim is
// deterministic under OrderLowestTag. The scan and the claim happen
// under one lock: two concurrent claims can never pick the same
// vehicle.
func (s *MemoryVehicles) ClaimAvailable(ctx context.Context, order SelectOrder) (*models.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := make([]string, 0, len(s.vehicles))
	for tag := range s.vehicles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		v := s.vehicles[tag]
		if v.Available() {
			v.Assigned = true
			copied := *v
			return &copied, nil
		}
	}
	return nil, models.ErrNoVehicleAvailable
}

func (s *MemoryVehicles) Unlock(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[tag]
	if !ok {
		return models.ErrUnknownTag
	}
	if !v.Assigned {
		return models.ErrNotAssigned
	}
	if !v.Locked {
		return models.ErrAlreadyUnlocked
	}
	v.Locked = false
	return nil
}

func (s *MemoryVehicles) Lock(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[tag]
	if !ok {
		return models.ErrVehicleNotFound
	}
	v.Locked = true
	return nil
}

func (s *MemoryVehicles) Release(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[tag]
	if !ok {
		return models.ErrVehicleNotFound
	}
	v.Assigned = false
	v.Locked = true
	return nil
}

// MemoryBindings is an in-process BindingStore.
type MemoryBindings struct {
	mu       sync.Mutex
	bindings map[string]*models.UserBinding
}

// NewMemoryBindings returns an empty in-memory binding store.
func NewMemoryBindings() *MemoryBindings {
	return &MemoryBindings{bindings: make(map[string]*models.UserBinding)}
}

func (s *MemoryBindings) InsertBinding(ctx context.Context, b models.UserBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bindings[b.UserID]; ok {
		return models.ErrAlreadyBound
	}
	copied := b
	s.bindings[b.UserID] = &copied
	return nil
}

func (s *MemoryBindings) FindBindingByUserID(ctx context.Context, userID string) (*models.UserBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bindings[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *MemoryBindings) DeleteBinding(ctx context.Context, userID string) (*models.UserBinding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bindings[userID]
	if !ok {
		return nil, models.ErrNotBound
	}
	delete(s.bindings, userID)
	return b, nil
}

// MemoryRides is an in-process RideStore.
type MemoryRides struct {
	mu    sync.Mutex
	rides []*models.Ride
}

// NewMemoryRides returns an empty in-memory ride store.
func NewMemoryRides() *MemoryRides {
	return &MemoryRides{}
}

func (s *MemoryRides) InsertOpenRide(ctx context.Context, ride models.Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rides {
		if r.VehicleTag == ride.VehicleTag && r.IsOpen() {
			return models.ErrRideAlreadyActive
		}
	}
	copied := ride
	copied.Open = true
	copied.EndTime = nil
	s.rides = append(s.rides, &copied)
	return nil
}

func (s *MemoryRides) CloseRide(ctx context.Context, tag string, end time.Time) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rides {
		if r.VehicleTag == tag && r.IsOpen() {
			endCopy := end
			r.EndTime = &endCopy
			r.Open = false
			copied := *r
			return &copied, nil
		}
	}
	return nil, models.ErrNoActiveRide
}

func (s *MemoryRides) FindOpenRide(ctx context.Context, tag string) (*models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rides {
		if r.VehicleTag == tag && r.IsOpen() {
			copied := *r
			return &copied, nil
		}
	}
	return nil, models.ErrNoActiveRide
}
