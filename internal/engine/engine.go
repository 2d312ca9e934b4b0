package engine

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/timescale/internal/dynamo"
	"github.com/san-kum/timescale/internal/timescale"
)

const (
	// MaxHostTimeScale is the largest time scale the engine accepts.
	MaxHostTimeScale = 100.0

	DefaultDt              = 0.01
	DefaultMaxFrameRate    = 240
	DefaultUncappedRefresh = time.Second / 240
	DefaultMaxSubsteps     = 1000
)

type Mode int

const (
	ModeEdit Mode = iota
	ModePlay
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "EDIT"
	case ModePlay:
		return "PLAYING"
	case ModePaused:
		return "PAUSED"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type Config struct {
	Dt float64
	// MaxFrameRate is the highest cap the engine will honor.
	MaxFrameRate int
	// UncappedRefresh is the frame interval used when no cap is set.
	UncappedRefresh time.Duration
	// MaxSubsteps bounds the fixed steps taken in one frame.
	MaxSubsteps     int
	TimeScale       float64
	TargetFrameRate int
}

func DefaultConfig() Config {
	return Config{
		Dt:              DefaultDt,
		MaxFrameRate:    DefaultMaxFrameRate,
		UncappedRefresh: DefaultUncappedRefresh,
		MaxSubsteps:     DefaultMaxSubsteps,
		TimeScale:       1.0,
		TargetFrameRate: 60,
	}
}

// Engine runs one dynamo.System in scaled real time. It owns the global
// time scale and frame rate cap and implements timescale.Host.
type Engine struct {
	sys    dynamo.System
	integ  dynamo.Integrator
	cfg    Config
	logger *log.Logger

	mode      Mode
	timeScale float64
	frameRate int

	x0      dynamo.State
	state   dynamo.State
	u       dynamo.Control
	simTime float64
	// accum holds scaled time not yet consumed by a fixed step.
	accum float64
	steps int
	err   error
}

var _ timescale.Host = (*Engine)(nil)

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine in edit mode. Zero fields in cfg take their
// defaults.
func New(sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, cfg Config, opts ...Option) (*Engine, error) {
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("initial state has %d entries, system wants %d", len(x0), sys.StateDim())
	}
	def := DefaultConfig()
	if cfg.Dt <= 0 {
		cfg.Dt = def.Dt
	}
	if cfg.MaxFrameRate <= 0 {
		cfg.MaxFrameRate = def.MaxFrameRate
	}
	if cfg.UncappedRefresh <= 0 {
		cfg.UncappedRefresh = def.UncappedRefresh
	}
	if cfg.MaxSubsteps <= 0 {
		cfg.MaxSubsteps = def.MaxSubsteps
	}

	e := &Engine{
		sys:    sys,
		integ:  integ,
		cfg:    cfg,
		logger: log.New(io.Discard),
		x0:     x0.Clone(),
		state:  x0.Clone(),
		u:      make(dynamo.Control, sys.ControlDim()),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetTimeScale(cfg.TimeScale)
	e.SetTargetFrameRate(cfg.TargetFrameRate)
	return e, nil
}

func (e *Engine) TimeScale() float64 { return e.timeScale }

// SetTimeScale clamps to [0, MaxHostTimeScale]. NaN is ignored.
func (e *Engine) SetTimeScale(scale float64) {
	if math.IsNaN(scale) {
		return
	}
	e.timeScale = math.Max(0, math.Min(MaxHostTimeScale, scale))
}

func (e *Engine) TargetFrameRate() int { return e.frameRate }

// SetTargetFrameRate coerces zero and values below Uncapped to Uncapped and
// clamps anything above the configured MaxFrameRate.
func (e *Engine) SetTargetFrameRate(fps int) {
	coerced := fps
	switch {
	case fps == 0 || fps < timescale.Uncapped:
		coerced = timescale.Uncapped
	case fps > e.cfg.MaxFrameRate:
		coerced = e.cfg.MaxFrameRate
	}
	if coerced != fps {
		e.logger.Debug("coerced frame rate", "requested", fps, "applied", timescale.FormatFrameRate(coerced))
	}
	e.frameRate = coerced
}

// IsSimulating is true in play mode, paused or not.
func (e *Engine) IsSimulating() bool { return e.mode != ModeEdit }

func (e *Engine) Mode() Mode { return e.mode }

// Play enters play mode from edit mode, or resumes from pause.
func (e *Engine) Play() {
	if e.mode == ModePlay {
		return
	}
	e.logger.Info("play", "from", e.mode)
	e.mode = ModePlay
}

func (e *Engine) Pause() {
	if e.mode == ModePlay {
		e.logger.Info("pause", "t", e.simTime)
		e.mode = ModePaused
	}
}

func (e *Engine) Resume() {
	if e.mode == ModePaused {
		e.logger.Info("resume", "t", e.simTime)
		e.mode = ModePlay
	}
}

// Stop leaves play mode and restores the initial state. The time scale and
// frame rate cap are kept.
func (e *Engine) Stop() {
	if e.mode == ModeEdit {
		return
	}
	e.logger.Info("stop", "t", e.simTime, "steps", e.steps)
	e.mode = ModeEdit
	e.state = e.x0.Clone()
	e.simTime = 0
	e.accum = 0
	e.steps = 0
	e.err = nil
}

// Frame advances the simulation by realDelta scaled by the current time
// scale, in fixed Dt steps. It does nothing outside play mode and returns
// the number of steps taken. Scaled time left over after MaxSubsteps is
// dropped so a slow frame cannot snowball.
func (e *Engine) Frame(realDelta time.Duration) int {
	if e.mode != ModePlay || realDelta <= 0 {
		return 0
	}
	e.accum += realDelta.Seconds() * e.timeScale

	taken := 0
	for e.accum >= e.cfg.Dt && taken < e.cfg.MaxSubsteps {
		next := e.integ.Step(e.sys, e.state, e.u, e.simTime, e.cfg.Dt)
		if !next.IsValid() {
			e.err = &dynamo.StepError{Step: e.steps, Time: e.simTime, Wrapped: dynamo.ErrUnstable}
			e.logger.Error("simulation diverged", "t", e.simTime, "step", e.steps)
			e.mode = ModePaused
			e.accum = 0
			return taken
		}
		e.state = next
		e.simTime += e.cfg.Dt
		e.accum -= e.cfg.Dt
		e.steps++
		taken++
	}
	if taken == e.cfg.MaxSubsteps && e.accum >= e.cfg.Dt {
		e.logger.Warn("dropping scaled time", "seconds", e.accum)
		e.accum = 0
	}
	return taken
}

// FrameInterval is the wall time between frames under the current cap.
func (e *Engine) FrameInterval() time.Duration {
	if e.frameRate == timescale.Uncapped {
		return e.cfg.UncappedRefresh
	}
	return time.Second / time.Duration(e.frameRate)
}

func (e *Engine) SimTime() float64      { return e.simTime }
func (e *Engine) Steps() int            { return e.steps }
func (e *Engine) State() dynamo.State   { return e.state.Clone() }
func (e *Engine) System() dynamo.System { return e.sys }

// Err reports why the engine paused itself, if it did.
func (e *Engine) Err() error { return e.err }

// Energy returns the system energy, or NaN if the system has none.
func (e *Engine) Energy() float64 {
	if h, ok := e.sys.(dynamo.Hamiltonian); ok {
		return h.Energy(e.state)
	}
	return math.NaN()
}
