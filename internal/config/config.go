// Package config loads viewer settings from config/floorspin.yaml with
// FLOORSPIN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/floorspin.yaml"

// Window holds desktop window settings.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
}

// Spin holds idle spin timing.
type Spin struct {
	InitialDelayMs int     `yaml:"initial_delay_ms"`
	PeriodMs       int     `yaml:"period_ms"`
	StepDegrees    float32 `yaml:"step_degrees"`
}

// Rotation-vector sources.
const (
	SourceSimulator = "simulator"
	SourceWebSocket = "websocket"
	SourceSerial    = "serial"
)

// Orientation controls whether sensor samples drive the scene. Off by default.
type Orientation struct {
	Enabled         bool   `yaml:"enabled"`
	DisplayRotation int    `yaml:"display_rotation"`
	Source          string `yaml:"source"`
	SampleRateHz    int    `yaml:"sample_rate_hz"`
	ChannelBuffer   int    `yaml:"channel_buffer"`
	URL             string `yaml:"url"`
	SerialPort      string `yaml:"serial_port"`
	BaudRate        int    `yaml:"baud_rate"`
	RetryMs         int    `yaml:"retry_ms"`
}

// Debug toggles the on-screen overlays.
type Debug struct {
	ShowFPS    bool `yaml:"show_fps"`
	ShowAngles bool `yaml:"show_angles"`
}

// Log configures package logger.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the whole settings file.
type Config struct {
	Window      Window      `yaml:"window"`
	Spin        Spin        `yaml:"spin"`
	Orientation Orientation `yaml:"orientation"`
	Debug       Debug       `yaml:"debug"`
	Log         Log         `yaml:"log"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Window: Window{
			Title:      "floorspin",
			Width:      1280,
			Height:     720,
			Fullscreen: true,
			TargetFPS:  60,
		},
		Spin: Spin{
			InitialDelayMs: 1000,
			PeriodMs:       100,
			StepDegrees:    1,
		},
		Orientation: Orientation{
			Source:        SourceSimulator,
			SampleRateHz:  50,
			ChannelBuffer: 64,
			BaudRate:      115200,
			RetryMs:       2000,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path on top of Default. A missing file is not an error; a
// malformed one is. Environment overrides are applied after the file.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first setting the viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Spin.PeriodMs <= 0:
		return fmt.Errorf("spin.period_ms must be positive, got %d", c.Spin.PeriodMs)
	case c.Spin.InitialDelayMs < 0:
		return fmt.Errorf("spin.initial_delay_ms must not be negative, got %d", c.Spin.InitialDelayMs)
	case c.Orientation.SampleRateHz <= 0:
		return fmt.Errorf("orientation.sample_rate_hz must be positive, got %d", c.Orientation.SampleRateHz)
	case c.Orientation.ChannelBuffer <= 0:
		return fmt.Errorf("orientation.channel_buffer must be positive, got %d", c.Orientation.ChannelBuffer)
	case c.Orientation.RetryMs <= 0:
		return fmt.Errorf("orientation.retry_ms must be positive, got %d", c.Orientation.RetryMs)
	case c.Window.TargetFPS < 0:
		return fmt.Errorf("window.target_fps must not be negative, got %d", c.Window.TargetFPS)
	}
	switch c.Orientation.DisplayRotation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("orientation.display_rotation must be 0, 90, 180 or 270, got %d", c.Orientation.DisplayRotation)
	}
	switch c.Orientation.Source {
	case SourceSimulator:
	case SourceWebSocket:
		if c.Orientation.URL == "" {
			return fmt.Errorf("orientation.url is required for the %s source", SourceWebSocket)
		}
	case SourceSerial:
		if c.Orientation.SerialPort == "" {
			return fmt.Errorf("orientation.serial_port is required for the %s source", SourceSerial)
		}
	default:
		return fmt.Errorf("orientation.source %q is not one of %s, %s, %s", c.Orientation.Source, SourceSimulator, SourceWebSocket, SourceSerial)
	}
	return nil
}

// Marshal renders c as YAML, e.g. for writing a starter file.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
