// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package config loads the settings of an orbit camera
// viewer from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gviegas/orbit/camera"
	"github.com/gviegas/orbit/input"
	"github.com/gviegas/orbit/linear"
	"github.com/gviegas/orbit/scene"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Formats.
const (
	YAML = "yaml"
	TOML = "toml"
)

// Camera holds the camera settings.
// Angles are in radians.
type Camera struct {
	Pivot     [3]float32 `yaml:"pivot" toml:"pivot"`
	Radius    float32    `yaml:"radius" toml:"radius"`
	Theta     float32    `yaml:"theta" toml:"theta"`
	Phi       float32    `yaml:"phi" toml:"phi"`
	MinRadius float32    `yaml:"min_radius" toml:"min_radius"`
	// MaxRadius is +Inf when unbounded.
	MaxRadius float32 `yaml:"max_radius" toml:"max_radius"`
}

// Input holds the input scale factors.
type Input struct {
	DragScale  float32 `yaml:"drag_scale" toml:"drag_scale"`
	WheelScale float32 `yaml:"wheel_scale" toml:"wheel_scale"`
	KeyStep    float32 `yaml:"key_step" toml:"key_step"`
	InvertY    bool    `yaml:"invert_y" toml:"invert_y"`
}

// Projection holds the perspective settings.
// The aspect ratio comes from the viewport.
type Projection struct {
	FovY float32 `yaml:"fov_y" toml:"fov_y"`
	Near float32 `yaml:"near" toml:"near"`
	Far  float32 `yaml:"far" toml:"far"`
	// Skybox is the radius of the sky sphere.
	Skybox float32 `yaml:"skybox" toml:"skybox"`
}

// Config is the full set of settings.
type Config struct {
	Camera     Camera     `yaml:"camera" toml:"camera"`
	Input      Input      `yaml:"input" toml:"input"`
	Projection Projection `yaml:"projection" toml:"projection"`
}

// Default returns the settings used when no file is given.
// They match camera.DefaultConfig, input.DefaultConfig and
// scene.DefaultProjection.
func Default() *Config {
	cam := camera.DefaultConfig()
	in := input.DefaultConfig()
	proj := scene.DefaultProjection()
	return &Config{
		Camera: Camera{
			Pivot:     cam.Pivot,
			Radius:    cam.Radius,
			Theta:     cam.Theta,
			Phi:       cam.Phi,
			MinRadius: cam.Bounds.Min,
			MaxRadius: cam.Bounds.Max,
		},
		Input: Input{
			DragScale:  in.DragScale,
			WheelScale: in.WheelScale,
			KeyStep:    in.KeyStep,
			InvertY:    in.InvertY,
		},
		Projection: Projection{
			FovY:   proj.FovY,
			Near:   proj.Near,
			Far:    proj.Far,
			Skybox: proj.Skybox,
		},
	}
}

// Format returns the format implied by the extension of
// path, or the empty string if it is not known.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	}
	return ""
}

// Parse decodes data in the given format on top of the
// default settings and validates the result.
// Settings absent from data keep their default values.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, cfg)
	case TOML:
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", format, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
// The format is chosen from the file extension.
func Load(path string) (*Config, error) {
	format := Format(path)
	if format == "" {
		return nil, fmt.Errorf("config: %s: unknown extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks that the settings describe a usable
// camera. The initial radius and angles are not checked
// since the camera clamps them.
func (c *Config) Validate() error {
	cam := &c.Camera
	switch {
	case !(cam.MinRadius > 0):
		return invalid("min_radius must be positive, have %v", cam.MinRadius)
	case !(cam.MaxRadius >= cam.MinRadius):
		return invalid("max_radius (%v) is less than min_radius (%v)", cam.MaxRadius, cam.MinRadius)
	}
	proj := &c.Projection
	switch {
	case !(proj.FovY > 0 && proj.FovY < math32.Pi):
		return invalid("fov_y must be in (0, π), have %v", proj.FovY)
	case !(proj.Near > 0):
		return invalid("near must be positive, have %v", proj.Near)
	case !(proj.Far > proj.Near):
		return invalid("far (%v) must be greater than near (%v)", proj.Far, proj.Near)
	case !(proj.Skybox > 0):
		return invalid("skybox must be positive, have %v", proj.Skybox)
	}
	return nil
}

// CameraConfig converts the camera settings.
func (c *Config) CameraConfig() *camera.Config {
	return &camera.Config{
		Pivot:  linear.V3(c.Camera.Pivot),
		Radius: c.Camera.Radius,
		Theta:  c.Camera.Theta,
		Phi:    c.Camera.Phi,
		Bounds: camera.Bounds{Min: c.Camera.MinRadius, Max: c.Camera.MaxRadius},
	}
}

// InputConfig converts the input settings.
func (c *Config) InputConfig() input.Config {
	return input.Config{
		DragScale:  c.Input.DragScale,
		WheelScale: c.Input.WheelScale,
		KeyStep:    c.Input.KeyStep,
		InvertY:    c.Input.InvertY,
	}
}

// ProjectionConfig converts the projection settings.
// The aspect ratio is set to 1.
func (c *Config) ProjectionConfig() scene.Projection {
	return scene.Projection{
		FovY:   c.Projection.FovY,
		Aspect: 1,
		Near:   c.Projection.Near,
		Far:    c.Projection.Far,
		Skybox: c.Projection.Skybox,
	}
}
