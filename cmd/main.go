package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/ev-rental/internal/config"
	"github.com/ukydev/ev-rental/internal/db"
	"github.com/ukydev/ev-rental/internal/events"
	"github.com/ukydev/ev-rental/internal/handlers"
	"github.com/ukydev/ev-rental/internal/middleware"
	"github.com/ukydev/ev-rental/internal/models"
	"github.com/ukydev/ev-rental/internal/notify"
	"github.com/ukydev/ev-rental/internal/rental"
	"github.com/ukydev/ev-rental/internal/tagimage"
)

func main() {
	cfg := config.Load()

	vehicles, bindings, rides, client := buildStores(cfg)
	if client != nil {
		defer client.Disconnect(context.Background())
	}

	seedVehicles(vehicles, cfg.SeedTags)

	registry := rental.NewRegistry(vehicles, db.OrderLowestTag)
	verifier := rental.NewVerifier(bindings, registry)
	ledger := rental.NewLedger(rides, registry)
	bindingSvc := rental.NewBindings(bindings)

	var sms notify.Dispatcher = notify.Noop{}
	if cfg.SMSConfigured() {
		sms = notify.NewTwilio(cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSFrom)
	}

	var publisher events.Publisher = events.Disabled{}
	if cfg.MQTTBroker != "" {
		mq, err := events.NewMQTT(cfg.MQTTBroker, "ev-rental-api")
		if err != nil {
			log.WithError(err).Warn("MQTT broker unreachable, lock events disabled")
		} else {
			defer mq.Close()
			publisher = mq
		}
	}

	service := rental.NewService(registry, verifier, ledger, bindingSvc,
		tagimage.NewQR(), sms, publisher)
	handler := handlers.NewRentalHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", handler.Register)
	mux.HandleFunc("/api/scan", handler.Scan)
	mux.HandleFunc("/api/rides/start", handler.StartRide)
	mux.HandleFunc("/api/rides/end", handler.EndRide)
	mux.HandleFunc("/api/drop", handler.Drop)
	mux.HandleFunc("/api/vehicles/", handler.Vehicle)
	mux.HandleFunc("/healthz", handler.Health)

	log.WithField("port", cfg.Port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+cfg.Port, middleware.RequestLogger(mux)))
}

// buildStores returns Mongo-backed stores when MONGO_URI is set and
// falls back to the in-memory backends otherwise.
func buildStores(cfg *config.Config) (db.VehicleStore, db.BindingStore, db.RideStore, *mongo.Client) {
	if cfg.MongoURI == "" {
		log.Info("MONGO_URI not set, using in-memory stores")
		return db.NewMemoryVehicles(), db.NewMemoryBindings(), db.NewMemoryRides(), nil
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	database := client.Database(cfg.MongoDB)
	vehicles := &db.MongoVehicles{Collection: database.Collection("vehicles")}
	bindings := &db.MongoBindings{Collection: database.Collection("bindings")}
	rides := &db.MongoRides{Collection: database.Collection("rides")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := vehicles.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create vehicle indexes: %v", err)
	}
	if err := bindings.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create binding indexes: %v", err)
	}
	if err := rides.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create ride indexes: %v", err)
	}
	log.Info("Connected to MongoDB")
	return vehicles, bindings, rides, client
}

// seedVehicles inserts missing fleet vehicles, locked and unassigned.
func seedVehicles(vehicles db.VehicleStore, tags []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, tag := range tags {
		err := vehicles.InsertVehicle(ctx, models.NewVehicle(tag))
		if errors.Is(err, models.ErrDuplicateTag) {
			continue
		}
		if err != nil {
			log.WithField("tag", tag).WithError(err).Fatal("Failed to seed vehicle")
		}
		log.WithField("tag", tag).Info("Seeded vehicle")
	}
}
