package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// The simulator drives the full rental lifecycle against a running API
// server: register, scan, ride, end, drop, with a little randomness in
// ride duration. Useful for watching lock-state events and for soaking
// the assign path under concurrent riders.

var apiURL string

type registerResponse struct {
	Tag string `json:"tag"`
}

type startRideResponse struct {
	RideID string `json:"ride_id"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func postJSON(path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(apiURL+path, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s (%s)", path, apiErr.Error, apiErr.Kind)
		}
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func rideOnce(riderID string) error {
	var reg registerResponse
	err := postJSON("/api/register", map[string]string{"user_id": riderID}, &reg)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	rider := log.WithFields(log.Fields{"rider": riderID, "tag": reg.Tag})
	rider.Info("Registered")

	err = postJSON("/api/scan", map[string]string{"user_id": riderID, "scanned_tag": reg.Tag}, nil)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	rider.Info("Unlocked")

	var start startRideResponse
	err = postJSON("/api/rides/start", map[string]string{"tag": reg.Tag, "user_id": riderID}, &start)
	if err != nil {
		return fmt.Errorf("start ride: %w", err)
	}
	rider.WithField("ride_id", start.RideID).Info("Ride started")

	time.Sleep(time.Duration(1+rand.Intn(4)) * time.Second)

	err = postJSON("/api/rides/end", map[string]string{"tag": reg.Tag}, nil)
	if err != nil {
		return fmt.Errorf("end ride: %w", err)
	}
	rider.Info("Ride ended")

	err = postJSON("/api/drop", map[string]string{"user_id": riderID}, nil)
	if err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	rider.Info("Vehicle dropped")
	return nil
}

func main() {
	apiURL = os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	riders := 3
	if v := os.Getenv("RIDERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			riders = n
		}
	}
	cycles := 5
	if v := os.Getenv("CYCLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cycles = n
		}
	}

	log.WithFields(log.Fields{"api_url": apiURL, "riders": riders, "cycles": cycles}).
		Info("Starting rental simulator")

	var wg sync.WaitGroup
	for i := 0; i < riders; i++ {
		wg.Add(1)
		go func(rider int) {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				riderID := fmt.Sprintf("sim-rider-%d-%d", rider, c)
				if err := rideOnce(riderID); err != nil {
					log.WithField("rider", riderID).WithError(err).Warn("Rental cycle failed")
					time.Sleep(2 * time.Second)
				}
			}
		}(i)
	}
	wg.Wait()
	log.Info("Simulator finished")
}
