package timescale

import (
	"io"

	"github.com/charmbracelet/log"
)

// Controller owns the target/current time scale and frame rate and applies
// them to a Host once per tick.
type Controller struct {
	host     Host
	clock    Clock
	duration float64
	logger   *log.Logger

	targetTimeScale  float64
	currentTimeScale float64
	// anchor is the time scale the running transition started from.
	anchor          float64
	transitionStart float64

	targetFrameRate  int
	currentFrameRate int
}

type Option func(*Controller)

// WithTransitionDuration overrides TransitionDuration. Non-positive values
// are ignored.
func WithTransitionDuration(seconds float64) Option {
	return func(c *Controller) {
		if seconds > 0 {
			c.duration = seconds
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New reads the host's current settings and starts with no transition in
// flight.
func New(host Host, clock Clock, opts ...Option) *Controller {
	scale := host.TimeScale()
	fps := host.TargetFrameRate()
	c := &Controller{
		host:             host,
		clock:            clock,
		duration:         TransitionDuration,
		logger:           log.New(io.Discard),
		targetTimeScale:  scale,
		currentTimeScale: scale,
		anchor:           scale,
		transitionStart:  clock.Now(),
		targetFrameRate:  fps,
		currentFrameRate: fps,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTargetTimeScale starts a new transition from the current value. The
// caller clamps newTarget. While the host is idle the value is applied
// immediately.
func (c *Controller) SetTargetTimeScale(newTarget float64) {
	c.anchor = c.currentTimeScale
	c.targetTimeScale = newTarget
	c.transitionStart = c.clock.Now()

	if !c.host.IsSimulating() {
		c.currentTimeScale = newTarget
		c.host.SetTimeScale(newTarget)
	}
	c.logger.Debug("time scale target", "from", c.anchor, "to", newTarget, "simulating", c.host.IsSimulating())
}

// SetTargetFrameRate sets the frame rate cap. It is never interpolated;
// while idle it is written through at once, otherwise on the next Advance.
func (c *Controller) SetTargetFrameRate(newTarget int) {
	c.targetFrameRate = newTarget
	if !c.host.IsSimulating() {
		c.host.SetTargetFrameRate(newTarget)
		c.currentFrameRate = c.host.TargetFrameRate()
	}
	c.logger.Debug("frame rate target", "fps", FormatFrameRate(newTarget))
}

// Advance runs one tick at wall time now (seconds, same clock as the one
// passed to New).
func (c *Controller) Advance(now float64) {
	if !c.host.IsSimulating() {
		c.currentTimeScale = c.host.TimeScale()
		c.currentFrameRate = c.host.TargetFrameRate()
		return
	}

	c.currentTimeScale = Lerp(c.anchor, c.targetTimeScale, c.Progress(now))
	c.host.SetTimeScale(c.currentTimeScale)

	if c.host.TargetFrameRate() != c.targetFrameRate {
		c.host.SetTargetFrameRate(c.targetFrameRate)
		if got := c.host.TargetFrameRate(); got != c.targetFrameRate {
			c.logger.Debug("host coerced frame rate", "want", c.targetFrameRate, "got", got)
		}
	}
	c.currentFrameRate = c.host.TargetFrameRate()
}

// Progress is the normalized transition position in [0, 1] at now.
func (c *Controller) Progress(now float64) float64 {
	return clamp01((now - c.transitionStart) / c.duration)
}

// Transitioning reports whether a time scale transition is still under way
// at now. Always false while the host is idle.
func (c *Controller) Transitioning(now float64) bool {
	return c.host.IsSimulating() && c.currentTimeScale != c.targetTimeScale && c.Progress(now) < 1
}

func (c *Controller) CurrentTimeScale() float64 { return c.currentTimeScale }
func (c *Controller) TargetTimeScale() float64  { return c.targetTimeScale }

// TransitionAnchor is the time scale the current transition started from.
func (c *Controller) TransitionAnchor() float64 { return c.anchor }

func (c *Controller) CurrentFrameRate() int { return c.currentFrameRate }
func (c *Controller) TargetFrameRate() int  { return c.targetFrameRate }

func (c *Controller) Duration() float64 { return c.duration }

// SetDuration changes the transition length. A transition in flight is
// re-anchored at the current value and now, so the time scale does not jump;
// it then reaches the same target over the new duration. Non-positive values
// are ignored.
func (c *Controller) SetDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	c.anchor = c.currentTimeScale
	c.transitionStart = c.clock.Now()
	c.duration = seconds
}
