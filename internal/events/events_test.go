package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTopic(t *testing.T) {
	if got := Topic("EV-1"); got != "fleet/EV-1/lock" {
		t.Errorf("Topic = %q, want fleet/EV-1/lock", got)
	}
}

func TestPayload(t *testing.T) {
	raw, err := Payload("EV-1", TransitionUnlocked)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	var event LockEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if event.Tag != "EV-1" {
		t.Errorf("Tag = %q, want EV-1", event.Tag)
	}
	if event.Transition != TransitionUnlocked {
		t.Errorf("Transition = %q, want %q", event.Transition, TransitionUnlocked)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Error("Timestamp not recent")
	}
}

func TestDisabled_PublishLockState(t *testing.T) {
	// Must be a safe no-op.
	Disabled{}.PublishLockState("EV-1", TransitionLocked)
}
