package config

import (
	"time"

	"github.com/jinzhu/copier"

	"floorspin/internal/orientation"
	"floorspin/internal/sensor"
	"floorspin/internal/spin"
)

// SpinOptions converts the millisecond settings to spin driver options.
func (c *Config) SpinOptions() spin.Options {
	return spin.Options{
		InitialDelay: time.Duration(c.Spin.InitialDelayMs) * time.Millisecond,
		Period:       time.Duration(c.Spin.PeriodMs) * time.Millisecond,
		Step:         c.Spin.StepDegrees,
	}
}

// SimulatorOptions copies the sampling settings into simulator options.
func (c *Config) SimulatorOptions() (sensor.SimulatorOptions, error) {
	var opts sensor.SimulatorOptions
	err := copier.Copy(&opts, &c.Orientation)
	return opts, err
}

// SensorSource builds the configured rotation-vector source.
func (c *Config) SensorSource() (sensor.Source, error) {
	retry := time.Duration(c.Orientation.RetryMs) * time.Millisecond
	switch c.Orientation.Source {
	case SourceWebSocket:
		var opts sensor.RemoteOptions
		if err := copier.Copy(&opts, &c.Orientation); err != nil {
			return nil, err
		}
		opts.Retry = retry
		return sensor.NewRemote(opts), nil
	case SourceSerial:
		var opts sensor.SerialOptions
		if err := copier.Copy(&opts, &c.Orientation); err != nil {
			return nil, err
		}
		opts.Retry = retry
		return sensor.NewSerial(opts), nil
	}
	opts, err := c.SimulatorOptions()
	if err != nil {
		return nil, err
	}
	return sensor.NewSimulator(opts), nil
}

// DisplayRotation returns the configured rotation. Unknown values become 0°.
func (c *Config) DisplayRotation() orientation.DisplayRotation {
	r := orientation.DisplayRotation(c.Orientation.DisplayRotation)
	if !r.Valid() {
		return orientation.Rotation0
	}
	return r
}
