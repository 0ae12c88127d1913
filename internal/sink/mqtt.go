package sink

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"igc2csv/internal/track"
)

type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// FixPayload is the JSON body published for each row.
type FixPayload struct {
	Time     string  `json:"time"`
	Lat      float32 `json:"lat"`
	Lng      float32 `json:"lng"`
	AltBaro  int     `json:"alt_baro"`
	AltGPS   int     `json:"alt_gps"`
	Validity string  `json:"validity"`
}

func NewFixPayload(r track.Row) FixPayload {
	return FixPayload{
		Time:     r.Time.Format(time.RFC3339),
		Lat:      r.Fix.Position.Lat.Degrees(),
		Lng:      r.Fix.Position.Lng.Degrees(),
		AltBaro:  r.Fix.AltBaro,
		AltGPS:   r.Fix.AltGPS,
		Validity: string(rune(r.Fix.Validity)),
	}
}

type MQTTOptions struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Retain   bool
	Timeout  time.Duration
}

// MQTT publishes each row as JSON to a single topic.
type MQTT struct {
	client  mqttClient
	topic   string
	qos     byte
	retain  bool
	timeout time.Duration
}

func NewMQTT(o MQTTOptions) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", o.Broker, token.Error())
	}
	return newMQTT(client, o), nil
}

func newMQTT(client mqttClient, o MQTTOptions) *MQTT {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	return &MQTT{client: client, topic: o.Topic, qos: o.QoS, retain: o.Retain, timeout: o.Timeout}
}

func (m *MQTT) Send(r track.Row) error {
	payload, err := json.Marshal(NewFixPayload(r))
	if err != nil {
		return fmt.Errorf("mqtt marshal: %w", err)
	}
	token := m.client.Publish(m.topic, m.qos, m.retain, payload)
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("mqtt publish %s: timeout after %s", m.topic, m.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", m.topic, err)
	}
	return nil
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
