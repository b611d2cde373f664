package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port       string
	MongoURI   string
	MongoDB    string
	MQTTBroker string

	SMSAccountSID string
	SMSAuthToken  string
	SMSFrom       string

	// SeedTags are vehicle tags inserted at startup if missing. The
	// fleet is otherwise created out of band.
	SeedTags []string
}

// Load reads configuration from the environment, after loading a .env
// file if one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded")
	}
	return &Config{
		Port:          getenv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getenv("MONGO_DB", "ev_rental"),
		MQTTBroker:    os.Getenv("MQTT_BROKER"),
		SMSAccountSID: os.Getenv("SMS_ACCOUNT_SID"),
		SMSAuthToken:  os.Getenv("SMS_AUTH_TOKEN"),
		SMSFrom:       os.Getenv("SMS_FROM"),
		SeedTags:      splitTags(os.Getenv("SEED_TAGS")),
	}
}

// SMSConfigured reports whether all Twilio settings are present.
func (c *Config) SMSConfigured() bool {
	return c.SMSAccountSID != "" && c.SMSAuthToken != "" && c.SMSFrom != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
