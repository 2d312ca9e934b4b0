package trace

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownEvent = errors.New("trace: unknown event kind")
	ErrBadScript    = errors.New("trace: invalid script")
)

type Kind string

const (
	KindPlay      Kind = "play"
	KindStop      Kind = "stop"
	KindPause     Kind = "pause"
	KindResume    Kind = "resume"
	KindTimeScale Kind = "time_scale"
	KindFrameRate Kind = "frame_rate"
)

// Event is one scripted input, applied at wall time At seconds.
type Event struct {
	At    float64 `yaml:"at"`
	Kind  Kind    `yaml:"kind"`
	Value float64 `yaml:"value,omitempty"`
}

// Script is a timeline of inputs replayed against an engine at a fixed tick
// rate.
type Script struct {
	Name     string  `yaml:"name"`
	Rate     float64 `yaml:"rate"`
	Duration float64 `yaml:"duration"`
	Events   []Event `yaml:"events"`
}

const (
	DefaultRate     = 60.0
	DefaultDuration = 3.0

	// MaxTicks bounds Duration*Rate, a little under five hours at 60 Hz.
	MaxTicks = 1 << 20
)

// DefaultScript plays, slows to a stop, ramps to 2x, retargets mid-ramp and
// drops the frame cap.
func DefaultScript() *Script {
	return &Script{
		Name:     "default",
		Rate:     DefaultRate,
		Duration: DefaultDuration,
		Events: []Event{
			{At: 0, Kind: KindPlay},
			{At: 0.5, Kind: KindTimeScale, Value: 0},
			{At: 1.0, Kind: KindTimeScale, Value: 2},
			{At: 1.2, Kind: KindTimeScale, Value: 0.3},
			{At: 1.5, Kind: KindFrameRate, Value: 30},
			{At: 2.5, Kind: KindTimeScale, Value: 1},
		},
	}
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	s := &Script{Rate: DefaultRate, Duration: DefaultDuration}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks rates and event kinds and sorts events by time, keeping
// the file order for events at the same instant.
func (s *Script) Validate() error {
	if !(s.Rate > 0) {
		return fmt.Errorf("%w: rate must be positive, got %v", ErrBadScript, s.Rate)
	}
	if !(s.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrBadScript, s.Duration)
	}
	if ticks := s.Duration * s.Rate; !(ticks <= MaxTicks) {
		return fmt.Errorf("%w: %.0f ticks exceeds the limit of %d", ErrBadScript, ticks, MaxTicks)
	}
	if s.Name == "" {
		s.Name = "script"
	}
	for i, ev := range s.Events {
		switch ev.Kind {
		case KindPlay, KindStop, KindPause, KindResume, KindTimeScale, KindFrameRate:
		default:
			return fmt.Errorf("event %d %q: %w", i, ev.Kind, ErrUnknownEvent)
		}
		if ev.At < 0 {
			return fmt.Errorf("%w: event %d at negative time %v", ErrBadScript, i, ev.At)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })
	return nil
}
