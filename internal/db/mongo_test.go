package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/ev-rental/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	defer os.Unsetenv("MONGO_URI")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestMongoVehicles_NilCollection(t *testing.T) {
	ctx := context.Background()
	s := &MongoVehicles{Collection: nil}

	if err := s.InsertVehicle(ctx, models.NewVehicle("EV-1")); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("InsertVehicle err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := s.FindVehicleByTag(ctx, "EV-1"); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("FindVehicleByTag err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := s.ClaimAvailable(ctx, OrderLowestTag); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("ClaimAvailable err = %v, want ErrStoreUnavailable", err)
	}
	if err := s.Unlock(ctx, "EV-1"); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("Unlock err = %v, want ErrStoreUnavailable", err)
	}
	if err := s.Lock(ctx, "EV-1"); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("Lock err = %v, want ErrStoreUnavailable", err)
	}
	if err := s.Release(ctx, "EV-1"); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("Release err = %v, want ErrStoreUnavailable", err)
	}
}

func TestMongoBindings_NilCollection(t *testing.T) {
	ctx := context.Background()
	s := &MongoBindings{Collection: nil}
	if err := s.InsertBinding(ctx, models.UserBinding{UserID: "alice"}); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("InsertBinding err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := s.FindBindingByUserID(ctx, "alice"); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("FindBindingByUserID err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := s.DeleteBinding(ctx, "alice"); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("DeleteBinding err = %v, want ErrStoreUnavailable", err)
	}
}

func TestMongoRides_NilCollection(t *testing.T) {
	ctx := context.Background()
	s := &MongoRides{Collection: nil}
	if err := s.InsertOpenRide(ctx, models.Ride{}); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("InsertOpenRide err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := s.CloseRide(ctx, "EV-1", time.Now()); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("CloseRide err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := s.FindOpenRide(ctx, "EV-1"); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("FindOpenRide err = %v, want ErrStoreUnavailable", err)
	}
}

// Integration test (requires running MongoDB)
func TestMongoVehicles_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
		return
	}
	defer client.Disconnect(context.Background())

	coll := client.Database("ev_rental_test").Collection("vehicles")
	defer coll.Drop(context.Background())
	s := &MongoVehicles{Collection: coll}
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	if err := s.InsertVehicle(ctx, models.NewVehicle("EV-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertVehicle(ctx, models.NewVehicle("EV-1")); !errors.Is(err, models.ErrDuplicateTag) {
		t.Errorf("duplicate insert: err = %v, want ErrDuplicateTag", err)
	}

	v, err := s.ClaimAvailable(ctx, OrderLowestTag)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if v.Tag != "EV-1" || !v.Assigned || !v.Locked {
		t.Errorf("claimed vehicle = %+v, want assigned and locked EV-1", v)
	}
	if _, err := s.ClaimAvailable(ctx, OrderLowestTag); !errors.Is(err, models.ErrNoVehicleAvailable) {
		t.Errorf("exhausted claim: err = %v, want ErrNoVehicleAvailable", err)
	}

	if err := s.Unlock(ctx, "EV-1"); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if err := s.Unlock(ctx, "EV-1"); !errors.Is(err, models.ErrAlreadyUnlocked) {
		t.Errorf("double unlock: err = %v, want ErrAlreadyUnlocked", err)
	}
	if err := s.Release(ctx, "EV-1"); err != nil {
		t.Fatalf("release: %v", err)
	}

	got, err := s.FindVehicleByTag(ctx, "EV-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Assigned || !got.Locked {
		t.Errorf("after release: assigned=%v locked=%v, want unassigned and locked", got.Assigned, got.Locked)
	}
}
