package main

import (
	"fmt"
	"io"

	"fortio.org/log"

	"floorspin/internal/config"
	"floorspin/internal/logger"
	"floorspin/internal/sensor"
	"floorspin/internal/viewer"
)

// setup loads .env and the config file, validates it and configures
// logging. The closer must be closed on exit.
func setup(dotEnv, path string) (config.Config, io.Closer, error) {
	if err := config.LoadDotEnv(dotEnv); err != nil {
		return config.Config{}, nil, fmt.Errorf("load %s: %w", dotEnv, err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("config %s: %w", path, err)
	}
	closer, err := logger.Setup(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, closer, nil
}

// newViewer builds a viewer from cfg. The rotation-vector source is only
// created when orientation is enabled.
func newViewer(cfg *config.Config) (*viewer.Viewer, error) {
	var src sensor.Source
	if cfg.Orientation.Enabled {
		var err error
		if src, err = cfg.SensorSource(); err != nil {
			return nil, fmt.Errorf("sensor source: %w", err)
		}
		log.Infof("floorspin: orientation from %s source, display rotation %d", cfg.Orientation.Source, cfg.Orientation.DisplayRotation)
	}
	return viewer.New(viewer.OptionsFrom(cfg), src), nil
}
