// Package config provides configuration loading and management for the
// voxform tool. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"voxform/pkg/affine"
)

// Config represents the tool configuration loaded from YAML.
type Config struct {
	// Bounds parameters control how voxel grids are mapped to world-space
	// bounding boxes.
	Bounds struct {
		// Origin is the voxel origin convention, "centre" or "corner".
		Origin string `yaml:"origin"`

		// Boundary selects which bounds are nudged inwards: "low", "high",
		// "both" or "none".
		Boundary string `yaml:"boundary"`

		// Offset is the boundary adjustment, in voxels.
		Offset float64 `yaml:"offset"`
	} `yaml:"bounds"`

	// RMS parameters control the RMS-deviation distance between transforms.
	RMS struct {
		// Radius of the sphere over which displacement is averaged.
		Radius float64 `yaml:"radius"`

		// Centre of that sphere, in world coordinates.
		Centre [3]float64 `yaml:"centre"`
	} `yaml:"rms"`

	// Output parameters.
	Output struct {
		// Precision is the number of decimal places printed for matrix and
		// parameter values.
		Precision int `yaml:"precision"`

		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Bounds.Origin = affine.OriginCentre
	cfg.Bounds.Boundary = affine.BoundaryHigh
	cfg.Bounds.Offset = 1e-4

	cfg.RMS.Radius = 1.0
	cfg.RMS.Centre = [3]float64{0, 0, 0}

	cfg.Output.Precision = 6
	cfg.Output.Verbose = false

	return cfg
}

// BoundsOptions converts the bounds section into affine.BoundsOptions.
func (cfg *Config) BoundsOptions() affine.BoundsOptions {
	opts := affine.DefaultBoundsOptions()
	opts.Origin = cfg.Bounds.Origin
	opts.Boundary = cfg.Bounds.Boundary
	opts.Offset = cfg.Bounds.Offset
	return opts
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
