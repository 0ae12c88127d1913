package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Replay  ReplayConfig  `yaml:"replay"`
}

type ConvertConfig struct {
	Header  bool `yaml:"header"`
	Workers int  `yaml:"workers"`
}

type ReplayConfig struct {
	Speed  float64      `yaml:"speed"`
	Loop   bool         `yaml:"loop"`
	UDP    UDPConfig    `yaml:"udp"`
	Serial SerialConfig `yaml:"serial"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
}

type UDPConfig struct {
	Enable bool   `yaml:"enable"`
	Dest   string `yaml:"dest"`
}

type SerialConfig struct {
	Enable bool   `yaml:"enable"`
	Device string `yaml:"device"`
	Baud   uint   `yaml:"baud"`
}

type MQTTConfig struct {
	Enable   bool          `yaml:"enable"`
	Broker   string        `yaml:"broker"`
	Topic    string        `yaml:"topic"`
	ClientID string        `yaml:"client_id"`
	QoS      int           `yaml:"qos"`
	Retain   bool          `yaml:"retain"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Convert: ConvertConfig{Header: true},
		Replay: ReplayConfig{
			Speed:  1,
			UDP:    UDPConfig{Dest: "127.0.0.1:10110"},
			Serial: SerialConfig{Device: "/dev/ttyUSB0", Baud: 4800},
			MQTT: MQTTConfig{
				Broker:   "tcp://localhost:1883",
				Topic:    "igc/fix",
				ClientID: "igc2csv",
				Timeout:  5 * time.Second,
			},
		},
	}
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes YAML over Default and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.Convert.Workers < 0 {
		return Config{}, fmt.Errorf("convert.workers must be >= 0")
	}

	if cfg.Replay.Speed == 0 {
		cfg.Replay.Speed = 1
	}
	if cfg.Replay.Speed < 0 {
		return Config{}, fmt.Errorf("replay.speed must be > 0")
	}

	if cfg.Replay.UDP.Enable && cfg.Replay.UDP.Dest == "" {
		return Config{}, fmt.Errorf("replay.udp.dest is required when replay.udp.enable is true")
	}

	if cfg.Replay.Serial.Enable {
		if cfg.Replay.Serial.Device == "" {
			return Config{}, fmt.Errorf("replay.serial.device is required when replay.serial.enable is true")
		}
		if cfg.Replay.Serial.Baud == 0 {
			cfg.Replay.Serial.Baud = 4800
		}
	}

	if cfg.Replay.MQTT.Enable {
		if cfg.Replay.MQTT.Broker == "" {
			return Config{}, fmt.Errorf("replay.mqtt.broker is required when replay.mqtt.enable is true")
		}
		if cfg.Replay.MQTT.Topic == "" {
			return Config{}, fmt.Errorf("replay.mqtt.topic is required when replay.mqtt.enable is true")
		}
	}
	if cfg.Replay.MQTT.QoS < 0 || cfg.Replay.MQTT.QoS > 2 {
		return Config{}, fmt.Errorf("replay.mqtt.qos must be 0, 1 or 2")
	}
	if cfg.Replay.MQTT.ClientID == "" {
		cfg.Replay.MQTT.ClientID = "igc2csv"
	}
	if cfg.Replay.MQTT.Timeout <= 0 {
		cfg.Replay.MQTT.Timeout = 5 * time.Second
	}

	return cfg, nil
}

// AnySinkEnabled reports whether replay has somewhere to send rows.
func (c ReplayConfig) AnySinkEnabled() bool {
	return c.UDP.Enable || c.Serial.Enable || c.MQTT.Enable
}
