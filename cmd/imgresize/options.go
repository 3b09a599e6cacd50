package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/xaionaro-go/imgpipeline/geometry"
	"github.com/xaionaro-go/imgpipeline/kernel"
	"github.com/xaionaro-go/imgpipeline/resampler"
	"github.com/xaionaro-go/imgpipeline/types"
)

// config is the on-disk (TOML) and flag-driven configuration of one resize.
type config struct {
	Width            uint32 `toml:"width"`
	Height           uint32 `toml:"height"`
	ScaleMode        string `toml:"scale_mode"`
	Interpolation    string `toml:"interpolation"`
	Rotation         int    `toml:"rotation"`
	FlipHorizontally bool   `toml:"flip_horizontally"`
	FlipVertically   bool   `toml:"flip_vertically"`
	GPU              bool   `toml:"gpu"`
}

func defaultConfig() config {
	return config{
		ScaleMode:     geometry.ScaleModeStretch.String(),
		Interpolation: resampler.InterpolationNearest.String(),
	}
}

func loadConfigFile(path string, cfg *config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("unable to parse the options file '%s': %w", path, err)
	}
	return nil
}

func (cfg config) transformationOptions() (kernel.TransformationOptions, error) {
	scaleMode, err := geometry.ScaleModeFromString(cfg.ScaleMode)
	if err != nil {
		return kernel.TransformationOptions{}, err
	}
	interpolation, err := resampler.InterpolationFromString(cfg.Interpolation)
	if err != nil {
		return kernel.TransformationOptions{}, err
	}
	rotation := geometry.Rotation(cfg.Rotation)
	if !rotation.IsValid() {
		return kernel.TransformationOptions{}, fmt.Errorf("unsupported rotation: %d degrees", cfg.Rotation)
	}
	opts := kernel.TransformationOptions{
		ScaleMode:     scaleMode,
		Interpolation: interpolation,
		Orientation: geometry.Orientation{
			Rotation:         rotation,
			FlipHorizontally: cfg.FlipHorizontally,
			FlipVertically:   cfg.FlipVertically,
		},
	}
	if cfg.Width != 0 || cfg.Height != 0 {
		size := types.Resolution{Width: cfg.Width, Height: cfg.Height}
		if !size.IsValid() {
			return kernel.TransformationOptions{}, fmt.Errorf("both --width and --height must be positive, got %s", size)
		}
		opts.OutputSize = &size
	}
	return opts, nil
}
