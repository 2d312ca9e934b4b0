package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/timescale/internal/dynamo"
	"github.com/san-kum/timescale/internal/engine"
	"github.com/san-kum/timescale/internal/integrators"
	"github.com/san-kum/timescale/internal/physics"
	"github.com/san-kum/timescale/internal/timescale"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNudge   = 0.05
	DefaultHistory = 120
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Panel  PanelConfig  `yaml:"panel"`
	Engine EngineConfig `yaml:"engine"`
}

type PanelConfig struct {
	TransitionDuration float64           `yaml:"transition_duration"`
	TimeScalePresets   []TimeScalePreset `yaml:"time_scale_presets"`
	FrameRatePresets   []FrameRatePreset `yaml:"frame_rate_presets"`
	NudgeTimeScale     float64           `yaml:"nudge_time_scale"`
	History            int               `yaml:"history"`
}

type TimeScalePreset struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

type FrameRatePreset struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

type EngineConfig struct {
	Model           string        `yaml:"model"`
	Integrator      string        `yaml:"integrator"`
	Dt              float64       `yaml:"dt"`
	TimeScale       float64       `yaml:"time_scale"`
	TargetFrameRate int           `yaml:"target_frame_rate"`
	MaxFrameRate    int           `yaml:"max_frame_rate"`
	UncappedRefresh time.Duration `yaml:"uncapped_refresh"`
	MaxSubsteps     int           `yaml:"max_substeps"`
	InitState       []float64     `yaml:"init_state,omitempty"`
	// Params are model parameters by name, e.g. damping for the pendulum.
	Params map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		Panel: PanelConfig{
			TransitionDuration: timescale.TransitionDuration,
			NudgeTimeScale:     DefaultNudge,
			History:            DefaultHistory,
		},
		Engine: EngineConfig{
			Model:           "pendulum",
			Integrator:      "rk4",
			Dt:              engine.DefaultDt,
			TimeScale:       1.0,
			TargetFrameRate: 60,
			MaxFrameRate:    engine.DefaultMaxFrameRate,
			UncappedRefresh: engine.DefaultUncappedRefresh,
			MaxSubsteps:     engine.DefaultMaxSubsteps,
		},
	}
	for _, p := range timescale.DefaultTimeScalePresets() {
		cfg.Panel.TimeScalePresets = append(cfg.Panel.TimeScalePresets, TimeScalePreset(p))
	}
	for _, p := range timescale.DefaultFrameRatePresets() {
		cfg.Panel.FrameRatePresets = append(cfg.Panel.FrameRatePresets, FrameRatePreset(p))
	}
	return cfg
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with and clamps preset
// values into the panel's ranges.
func (c *Config) Validate() error {
	if c.Panel.TransitionDuration <= 0 {
		return fmt.Errorf("%w: transition_duration must be positive, got %v", ErrInvalidConfig, c.Panel.TransitionDuration)
	}
	if c.Engine.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Engine.Dt)
	}
	if _, err := c.NewSystem(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := integrators.New(c.Engine.Integrator); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Engine.InitState != nil && len(c.Engine.InitState) != len(physics.DefaultState(c.Engine.Model)) {
		return fmt.Errorf("%w: init_state for %s needs %d values, got %d",
			ErrInvalidConfig, c.Engine.Model, len(physics.DefaultState(c.Engine.Model)), len(c.Engine.InitState))
	}
	if c.Panel.NudgeTimeScale <= 0 {
		c.Panel.NudgeTimeScale = DefaultNudge
	}
	if c.Panel.History <= 0 {
		c.Panel.History = DefaultHistory
	}
	c.Engine.TimeScale = timescale.ClampTimeScale(c.Engine.TimeScale)
	c.Engine.TargetFrameRate = timescale.ClampFrameRate(c.Engine.TargetFrameRate)
	for i := range c.Panel.TimeScalePresets {
		c.Panel.TimeScalePresets[i].Value = timescale.ClampTimeScale(c.Panel.TimeScalePresets[i].Value)
	}
	for i := range c.Panel.FrameRatePresets {
		c.Panel.FrameRatePresets[i].Value = timescale.ClampFrameRate(c.Panel.FrameRatePresets[i].Value)
	}
	return nil
}

// NewSystem builds the configured model with its params applied.
func (c *Config) NewSystem() (dynamo.System, error) {
	sys, err := physics.New(c.Engine.Model)
	if err != nil {
		return nil, err
	}
	if err := physics.Configure(sys, c.Engine.Params); err != nil {
		return nil, err
	}
	return sys, nil
}

// GetInitState returns the configured initial state or the model's default.
func (c *Config) GetInitState() []float64 {
	if c.Engine.InitState != nil {
		out := make([]float64, len(c.Engine.InitState))
		copy(out, c.Engine.InitState)
		return out
	}
	return physics.DefaultState(c.Engine.Model)
}

func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Dt:              c.Engine.Dt,
		MaxFrameRate:    c.Engine.MaxFrameRate,
		UncappedRefresh: c.Engine.UncappedRefresh,
		MaxSubsteps:     c.Engine.MaxSubsteps,
		TimeScale:       c.Engine.TimeScale,
		TargetFrameRate: c.Engine.TargetFrameRate,
	}
}

func (c *Config) TimeScalePresets() []timescale.TimeScalePreset {
	out := make([]timescale.TimeScalePreset, len(c.Panel.TimeScalePresets))
	for i, p := range c.Panel.TimeScalePresets {
		out[i] = timescale.TimeScalePreset(p)
	}
	return out
}

func (c *Config) FrameRatePresets() []timescale.FrameRatePreset {
	out := make([]timescale.FrameRatePreset, len(c.Panel.FrameRatePresets))
	for i, p := range c.Panel.FrameRatePresets {
		out[i] = timescale.FrameRatePreset(p)
	}
	return out
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
