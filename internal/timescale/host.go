package timescale

import "time"

// Host is the engine side of the controller: the two global settings it
// mutates and the mode flag it branches on.
type Host interface {
	TimeScale() float64
	SetTimeScale(scale float64)

	// TargetFrameRate returns the frame rate cap, Uncapped for none.
	TargetFrameRate() int
	// SetTargetFrameRate may coerce the value; callers read it back.
	SetTargetFrameRate(fps int)

	IsSimulating() bool
}

// Clock is a monotonic wall clock in seconds.
type Clock interface {
	Now() float64
}

// SystemClock reports seconds elapsed since it was created. It reads the
// monotonic reading of time.Time, so wall clock adjustments do not move it.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to. Used by tests and scripted runs.
type ManualClock struct {
	now float64
}

func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() float64 { return c.now }

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d float64) { c.now += d }

func (c *ManualClock) Set(now float64) { c.now = now }
