package rental

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ev-rental/internal/events"
	"github.com/ukydev/ev-rental/internal/models"
	"github.com/ukydev/ev-rental/internal/notify"
	"github.com/ukydev/ev-rental/internal/tagimage"
)

// Service orchestrates the rental lifecycle across the fleet registry,
// the tag verifier, the ride ledger and the binding store. The QR
// encoder, SMS dispatcher and event publisher are external
// collaborators: all of them are best effort and none can fail a
// rental operation.
type Service struct {
	registry *Registry
	verifier *Verifier
	ledger   *Ledger
	bindings *Bindings
	imager   tagimage.Encoder
	sms      notify.Dispatcher
	events   events.Publisher
}

// NewService wires the rental service.
func NewService(registry *Registry, verifier *Verifier, ledger *Ledger, bindings *Bindings,
	imager tagimage.Encoder, sms notify.Dispatcher, publisher events.Publisher) *Service {
	return &Service{
		registry: registry,
		verifier: verifier,
		ledger:   ledger,
		bindings: bindings,
		imager:   imager,
		sms:      sms,
		events:   publisher,
	}
}

// Register assigns an available vehicle to the user and binds it. If
// the bind fails after the claim succeeded, the vehicle is released
// again so no assignment is orphaned.
func (s *Service) Register(ctx context.Context, userID, phoneNumber string) (*models.RegisterResponse, error) {
	tag, err := s.registry.AssignAny(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.bindings.Bind(ctx, userID, tag, phoneNumber); err != nil {
		// Compensating action: the claim must not outlive a failed bind.
		if relErr := s.registry.Release(ctx, tag); relErr != nil {
			log.WithFields(log.Fields{"tag": tag, "user_id": userID}).
				WithError(relErr).Error("Failed to release vehicle after bind failure")
		}
		return nil, err
	}
	s.events.PublishLockState(tag, events.TransitionAssigned)

	resp := &models.RegisterResponse{Tag: tag}
	if image, err := s.imager.Encode(tag); err != nil {
		log.WithField("tag", tag).WithError(err).Warn("Failed to encode tag image")
	} else {
		resp.QRPNGBase64 = image
	}
	if phoneNumber != "" {
		if err := s.sms.Send(ctx, phoneNumber, "Your vehicle "+tag+" is ready. Scan the tag to unlock."); err != nil {
			log.WithField("user_id", userID).WithError(err).Warn("Failed to send registration SMS")
		}
	}
	return resp, nil
}

// Scan verifies the scanned tag against the user's binding and the
// registry, unlocking the vehicle on success.
func (s *Service) Scan(ctx context.Context, userID, scannedTag string) error {
	if err := s.verifier.Verify(ctx, userID, scannedTag); err != nil {
		return err
	}
	s.events.PublishLockState(scannedTag, events.TransitionUnlocked)
	return nil
}

// StartRide opens a ride on an unlocked vehicle.
func (s *Service) StartRide(ctx context.Context, tag, userID string) (*models.Ride, error) {
	return s.ledger.Open(ctx, tag, userID)
}

// EndRide closes the open ride for the tag and re-locks the vehicle.
// The ledger never touches vehicle state, so the re-lock happens here.
func (s *Service) EndRide(ctx context.Context, tag string) (*models.Ride, error) {
	ride, err := s.ledger.Close(ctx, tag)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Lock(ctx, tag); err != nil {
		return nil, err
	}
	s.events.PublishLockState(tag, events.TransitionLocked)
	return ride, nil
}

// DropVehicle removes the user's binding and returns the vehicle to
// the fleet, re-locked.
func (s *Service) DropVehicle(ctx context.Context, userID string) (string, error) {
	binding, err := s.bindings.Unbind(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := s.registry.Release(ctx, binding.VehicleTag); err != nil {
		return "", err
	}
	s.events.PublishLockState(binding.VehicleTag, events.TransitionReleased)
	if binding.PhoneNumber != "" {
		if err := s.sms.Send(ctx, binding.PhoneNumber, "Vehicle "+binding.VehicleTag+" returned. Thanks for riding."); err != nil {
			log.WithField("user_id", userID).WithError(err).Warn("Failed to send drop-off SMS")
		}
	}
	return binding.VehicleTag, nil
}

// Vehicle returns the registry snapshot for a tag.
func (s *Service) Vehicle(ctx context.Context, tag string) (*models.Vehicle, error) {
	return s.registry.Get(ctx, tag)
}
