package main

import (
	"context"
	"errors"
	"io"
	"log"

	"igc2csv/internal/config"
	"igc2csv/internal/replay"
	"igc2csv/internal/sink"
)

var errNoSink = errors.New("replay: no sink enabled (set replay.udp, replay.serial or replay.mqtt in the config)")

func openSinks(cfg config.ReplayConfig) (sink.Multi, error) {
	var out sink.Multi
	fail := func(err error) (sink.Multi, error) {
		_ = out.Close()
		return nil, err
	}

	if cfg.UDP.Enable {
		u, err := sink.NewUDP(cfg.UDP.Dest)
		if err != nil {
			return fail(err)
		}
		out = append(out, u)
	}
	if cfg.Serial.Enable {
		s, err := sink.NewSerial(cfg.Serial.Device, cfg.Serial.Baud)
		if err != nil {
			return fail(err)
		}
		out = append(out, s)
	}
	if cfg.MQTT.Enable {
		m, err := sink.NewMQTT(sink.MQTTOptions{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
			QoS:      byte(cfg.MQTT.QoS),
			Retain:   cfg.MQTT.Retain,
			Timeout:  cfg.MQTT.Timeout,
		})
		if err != nil {
			return fail(err)
		}
		out = append(out, m)
	}
	return out, nil
}

func replayTrack(ctx context.Context, opts options, cfg config.Config, stdin io.Reader, logger *log.Logger) error {
	if !cfg.Replay.AnySinkEnabled() {
		return errNoSink
	}
	rows, st, err := loadRows(ctx, opts, cfg, stdin)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("replay: track has no fixes")
	}

	sinks, err := openSinks(cfg.Replay)
	if err != nil {
		return err
	}
	defer sinks.Close()

	logger.Printf("replaying %d fixes (%s) speed=%gx loop=%v", len(rows), st.Duration(), cfg.Replay.Speed, cfg.Replay.Loop)
	err = replay.Play(ctx, rows, cfg.Replay.Speed, cfg.Replay.Loop, nil, sinks.Send)
	if err != nil && ctx.Err() != nil {
		logger.Printf("replay stopped")
		return nil
	}
	return err
}
