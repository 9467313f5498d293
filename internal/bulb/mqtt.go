package bulb

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

// zigbee2mqtt-style state payloads report hue in degrees and brightness
// as a byte capped at 254.
const (
	mqttHueRangeMax        = 360
	mqttBrightnessRangeMax = 254
)

const (
	mqttConnectTimeout   = 10 * time.Second
	mqttFirstStateWait   = 5 * time.Second
	mqttDisconnectQuiesc = 1000 // milliseconds
	defaultMQTTClientID  = "vrchat-light-sync"
)

// MQTTConfig holds broker and topic settings for a bulb that reports
// state over MQTT.
type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
}

// Validate checks that every field required to reach the broker is set
func (c MQTTConfig) Validate() error {
	errFactory := errors.New()

	if c.Broker == "" {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "mqtt.broker is required")
	}
	if c.Topic == "" {
		return errFactory.WithMessage(ErrInvalidBackendConfig, "mqtt.topic is required")
	}

	return nil
}

// mqttProvider subscribes to the state topic and caches the latest raw
// payload. Decoding happens on Fetch, keeping parse errors on the polling
// goroutine instead of the broker callback.
type mqttProvider struct {
	client paho.Client
	topic  string

	// firstStateWait bounds how long the first Fetch blocks for a
	// retained state message before giving up.
	firstStateWait time.Duration

	mu      sync.Mutex
	payload []byte

	ready     chan struct{}
	readyOnce sync.Once
}

// NewMQTT creates a Provider that mirrors a bulb's retained state topic
func NewMQTT(cfg MQTTConfig) (Provider, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &mqttProvider{
		topic:          cfg.Topic,
		firstStateWait: mqttFirstStateWait,
		ready:          make(chan struct{}),
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = defaultMQTTClientID
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	m.client = paho.NewClient(opts)

	token := m.client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, errFactory.WithMessage(ErrConnectFailed, "connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, errFactory.Wrap(ErrConnectFailed, err)
	}

	token = m.client.Subscribe(cfg.Topic, 0, func(_ paho.Client, msg paho.Message) {
		m.store(msg.Payload())
	})
	if !token.WaitTimeout(mqttConnectTimeout) {
		m.client.Disconnect(mqttDisconnectQuiesc)
		return nil, errFactory.WithMessage(ErrConnectFailed, "subscribe timeout")
	}
	if err := token.Error(); err != nil {
		m.client.Disconnect(mqttDisconnectQuiesc)
		return nil, errFactory.Wrap(ErrConnectFailed, err)
	}

	return m, nil
}

// store keeps a copy of the raw payload and unblocks the first Fetch
func (m *mqttProvider) store(payload []byte) {
	m.mu.Lock()
	m.payload = append([]byte(nil), payload...)
	m.mu.Unlock()

	m.readyOnce.Do(func() { close(m.ready) })
}

// Fetch returns the most recently received state. The first call waits a
// bounded time for the retained message; later calls return immediately.
func (m *mqttProvider) Fetch(ctx context.Context) (State, error) {
	errFactory := errors.New()

	select {
	case <-m.ready:
	default:
		select {
		case <-m.ready:
		case <-ctx.Done():
			return State{}, errFactory.Wrap(ErrFetchFailed, ctx.Err())
		case <-time.After(m.firstStateWait):
			return State{}, errFactory.WithMessage(ErrNoStateReceived, "no state message received on "+m.topic)
		}
	}

	m.mu.Lock()
	payload := m.payload
	m.mu.Unlock()

	return mqttState(payload)
}

// Close disconnects from the broker
func (m *mqttProvider) Close() error {
	m.client.Disconnect(mqttDisconnectQuiesc)
	return nil
}

// mqttState decodes one state payload and normalizes it. Absent or
// non-numeric fields default to zero, same as the other backends.
func mqttState(payload []byte) (State, error) {
	errFactory := errors.New()

	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return State{}, errFactory.Wrap(ErrDecodeFailed, err)
	}

	var hue, brightness float64
	if color, ok := doc["color"].(map[string]any); ok {
		if v, ok := color["hue"].(float64); ok {
			hue = v
		}
	}
	if v, ok := doc["brightness"].(float64); ok {
		brightness = v
	}

	return State{
		On:         doc["state"] == "ON",
		Hue:        Translate(hue, 0, mqttHueRangeMax, 0, 1),
		Brightness: Translate(brightness, 0, mqttBrightnessRangeMax, 0, 1),
	}, nil
}
