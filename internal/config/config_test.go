package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "MONGO_DB", "MQTT_BROKER",
		"SMS_ACCOUNT_SID", "SMS_AUTH_TOKEN", "SMS_FROM", "SEED_TAGS"} {
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MongoDB != "ev_rental" {
		t.Errorf("MongoDB = %q, want ev_rental", cfg.MongoDB)
	}
	if cfg.MongoURI != "" {
		t.Errorf("MongoURI = %q, want empty", cfg.MongoURI)
	}
	if len(cfg.SeedTags) != 0 {
		t.Errorf("SeedTags = %v, want empty", cfg.SeedTags)
	}
	if cfg.SMSConfigured() {
		t.Error("SMS must not be configured by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("SEED_TAGS", "EV-1, EV-2 ,,EV-3")
	os.Setenv("SMS_ACCOUNT_SID", "AC123")
	os.Setenv("SMS_AUTH_TOKEN", "secret")
	os.Setenv("SMS_FROM", "+15550000")
	defer func() {
		for _, key := range []string{"PORT", "SEED_TAGS", "SMS_ACCOUNT_SID", "SMS_AUTH_TOKEN", "SMS_FROM"} {
			os.Unsetenv(key)
		}
	}()

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	want := []string{"EV-1", "EV-2", "EV-3"}
	if len(cfg.SeedTags) != len(want) {
		t.Fatalf("SeedTags = %v, want %v", cfg.SeedTags, want)
	}
	for i, tag := range want {
		if cfg.SeedTags[i] != tag {
			t.Errorf("SeedTags[%d] = %q, want %q", i, cfg.SeedTags[i], tag)
		}
	}
	if !cfg.SMSConfigured() {
		t.Error("SMS must be configured")
	}
}
