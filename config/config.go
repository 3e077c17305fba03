// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/galaxy/controls"
	"github.com/pthm-cable/galaxy/galaxy"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig           `yaml:"screen"`
	Galaxy    GalaxyConfig           `yaml:"galaxy"`
	Starfield StarfieldConfig        `yaml:"starfield"`
	Controls  map[string]RangeConfig `yaml:"controls"`
	Camera    CameraConfig           `yaml:"camera"`
	Animation AnimationConfig        `yaml:"animation"`
	Textures  TexturesConfig         `yaml:"textures"`
	Telemetry TelemetryConfig        `yaml:"telemetry"`
	Logging   LoggingConfig          `yaml:"logging"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	TargetFPS      int     `yaml:"target_fps"`
	Resizable      bool    `yaml:"resizable"`
	ResizeInterval float64 `yaml:"resize_interval"`
}

// GalaxyConfig holds the initial galaxy parameters.
type GalaxyConfig struct {
	Count        int     `yaml:"count"`
	Size         float64 `yaml:"size"`
	Radius       float64 `yaml:"radius"`
	Branches     int     `yaml:"branches"`
	Spin         float64 `yaml:"spin"`
	Randomness   float64 `yaml:"randomness"`
	InsideColor  string  `yaml:"inside_color"`
	MidColor     string  `yaml:"mid_color"`
	OutsideColor string  `yaml:"outside_color"`
	Gradient     string  `yaml:"gradient"`
}

// StarfieldConfig holds the backdrop settings.
type StarfieldConfig struct {
	Count   int     `yaml:"count"`
	Spread  float64 `yaml:"spread"`
	Size    float64 `yaml:"size"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

// RangeConfig declares the editable domain of one panel field.
type RangeConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Position    [3]float64 `yaml:"position"`
	Target      [3]float64 `yaml:"target"`
	FOV         float64    `yaml:"fov"`
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	Damping     float64    `yaml:"damping"`
	MinDistance float64    `yaml:"min_distance"`
	MaxDistance float64    `yaml:"max_distance"`
	ZoomStep    float64    `yaml:"zoom_step"` // radius factor per wheel notch
}

// AnimationConfig holds idle animation settings.
type AnimationConfig struct {
	RotationSpeed float64 `yaml:"rotation_speed"`
}

// TexturesConfig holds sprite paths.
type TexturesConfig struct {
	Galaxy       string `yaml:"galaxy"`
	Starfield    string `yaml:"starfield"`
	FallbackSize int    `yaml:"fallback_size"` // generated sprite size when a file fails to load
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`
	LogInterval float64 `yaml:"log_interval"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GalaxyParams   galaxy.Params // Galaxy section with parsed colors
	StarfieldColor galaxy.Color
	Fields         []controls.Field // panel fields with configured ranges
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	g := c.Galaxy
	inside, err := galaxy.ParseColor(g.InsideColor)
	if err != nil {
		return fmt.Errorf("galaxy.inside_color: %w", err)
	}
	mid, err := galaxy.ParseColor(g.MidColor)
	if err != nil {
		return fmt.Errorf("galaxy.mid_color: %w", err)
	}
	outside, err := galaxy.ParseColor(g.OutsideColor)
	if err != nil {
		return fmt.Errorf("galaxy.outside_color: %w", err)
	}
	gradient, err := galaxy.ParseGradient(g.Gradient)
	if err != nil {
		return fmt.Errorf("galaxy.gradient: %w", err)
	}
	c.Derived.GalaxyParams = galaxy.Params{
		Count:        g.Count,
		Size:         g.Size,
		Radius:       g.Radius,
		Branches:     g.Branches,
		Spin:         g.Spin,
		Randomness:   g.Randomness,
		InsideColor:  inside,
		MidColor:     mid,
		OutsideColor: outside,
		Gradient:     gradient,
	}

	c.Derived.StarfieldColor, err = galaxy.ParseColor(c.Starfield.Color)
	if err != nil {
		return fmt.Errorf("starfield.color: %w", err)
	}

	fields := controls.DefaultFields()
	for name, r := range c.Controls {
		id, err := controls.FieldByName(name)
		if err != nil {
			return fmt.Errorf("controls.%s: %w", name, err)
		}
		rng := controls.Range{Min: r.Min, Max: r.Max, Step: r.Step}
		if err := controls.ValidateRange(id, rng); err != nil {
			return fmt.Errorf("controls.%s: %w", name, err)
		}
		for i := range fields {
			if fields[i].ID == id {
				fields[i].Range = rng
			}
		}
	}
	c.Derived.Fields = fields
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
