package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Transition names a lock-state change on a vehicle.
type Transition string

const (
	TransitionAssigned Transition = "assigned"
	TransitionUnlocked Transition = "unlocked"
	TransitionLocked   Transition = "locked"
	TransitionReleased Transition = "released"
)

// LockEvent is the payload published on each transition. A physical
// lock controller subscribes on fleet/<tag>/lock and acts on it.
type LockEvent struct {
	Tag        string     `json:"tag"`
	Transition Transition `json:"transition"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Publisher announces lock-state transitions. Publishing is best
// effort: the rental flow never fails because an event did not go out.
type Publisher interface {
	PublishLockState(tag string, transition Transition)
}

// Disabled is the publisher used when no broker is configured.
type Disabled struct{}

// PublishLockState discards the event.
func (Disabled) PublishLockState(tag string, transition Transition) {}

// Topic returns the MQTT topic for a vehicle's lock events.
func Topic(tag string) string {
	return fmt.Sprintf("fleet/%s/lock", tag)
}

// Payload marshals the event published for tag and transition.
func Payload(tag string, transition Transition) ([]byte, error) {
	return json.Marshal(LockEvent{
		Tag:        tag,
		Transition: transition,
		Timestamp:  time.Now().UTC(),
	})
}

// MQTT publishes lock events to an MQTT broker.
type MQTT struct {
	client  mqtt.Client
	timeout time.Duration
}

// NewMQTT connects to the broker and returns a publisher.
func NewMQTT(broker, clientID string) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10*time.Second) || token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %v", broker, token.Error())
	}
	return &MQTT{client: client, timeout: 5 * time.Second}, nil
}

// PublishLockState publishes the event at QoS 0. Failures are logged,
// never propagated.
func (m *MQTT) PublishLockState(tag string, transition Transition) {
	payload, err := Payload(tag, transition)
	if err != nil {
		log.WithError(err).Warn("Failed to marshal lock event")
		return
	}
	token := m.client.Publish(Topic(tag), 0, false, payload)
	if !token.WaitTimeout(m.timeout) || token.Error() != nil {
		log.WithFields(log.Fields{"tag": tag, "transition": transition}).
			WithError(token.Error()).Warn("Failed to publish lock event")
	}
}

// Close disconnects from the broker.
func (m *MQTT) Close() {
	m.client.Disconnect(250)
}
