package timescale

import (
	"math"
	"strconv"
)

const (
	// TransitionDuration is how long, in seconds, a time scale change takes
	// to reach its target while the host is simulating.
	TransitionDuration = 0.5

	MinTimeScale = 0.0
	MaxTimeScale = 2.0

	// Uncapped is the frame rate sentinel for "no cap".
	Uncapped     = -1
	MinFrameRate = Uncapped
	MaxFrameRate = 120
)

// TimeScalePreset is a one-press time scale value.
type TimeScalePreset struct {
	Label string
	Value float64
}

// FrameRatePreset is a one-press frame rate cap.
type FrameRatePreset struct {
	Label string
	Value int
}

func DefaultTimeScalePresets() []TimeScalePreset {
	return []TimeScalePreset{
		{"0x", 0.0},
		{"0.1x", 0.1},
		{"0.3x", 0.3},
		{"1x", 1.0},
		{"2x", 2.0},
	}
}

func DefaultFrameRatePresets() []FrameRatePreset {
	return []FrameRatePreset{
		{"UNCAP", Uncapped},
		{"5", 5},
		{"30", 30},
		{"60", 60},
		{"120", 120},
	}
}

// ClampTimeScale limits v to [MinTimeScale, MaxTimeScale]. NaN maps to
// MinTimeScale.
func ClampTimeScale(v float64) float64 {
	if math.IsNaN(v) {
		return MinTimeScale
	}
	return math.Max(MinTimeScale, math.Min(MaxTimeScale, v))
}

// ClampFrameRate limits v to [MinFrameRate, MaxFrameRate].
func ClampFrameRate(v int) int {
	return max(MinFrameRate, min(MaxFrameRate, v))
}

// Lerp interpolates from a to b; t is not clamped. Lerp(a, b, 1) == b
// exactly.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func FormatTimeScale(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatFrameRate renders a frame rate cap, spelling out Uncapped.
func FormatFrameRate(fps int) string {
	if fps == Uncapped {
		return "Uncapped"
	}
	return strconv.Itoa(fps)
}
