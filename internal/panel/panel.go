package panel

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/timescale/internal/config"
	"github.com/san-kum/timescale/internal/engine"
	"github.com/san-kum/timescale/internal/timescale"
)

const (
	minTickInterval = time.Millisecond
	sliderWidth     = 30
)

// TickMsg drives one panel frame.
type TickMsg time.Time

// ConfigMsg carries a reloaded configuration.
type ConfigMsg struct {
	Config *config.Config
}

// ErrMsg reports a config reload failure; the panel keeps running.
type ErrMsg struct {
	Err error
}

// Model is the time scale window. Opening it builds a fresh controller from
// the engine's current settings; nothing survives after it closes.
type Model struct {
	eng    *engine.Engine
	ctrl   *timescale.Controller
	clock  timescale.Clock
	logger *log.Logger

	timeScalePresets []timescale.TimeScalePreset
	frameRatePresets []timescale.FrameRatePreset
	nudge            float64
	historyCap       int
	duration         float64

	history  []float64
	lastTick time.Time
	fps      float64
	width    int
	status   string
}

type Option func(*Model)

func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithConfig applies panel settings (presets, nudge step, history length,
// transition duration) from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(m *Model) { m.applyConfig(cfg) }
}

func New(eng *engine.Engine, clock timescale.Clock, opts ...Option) Model {
	m := Model{
		eng:              eng,
		clock:            clock,
		logger:           log.New(io.Discard),
		timeScalePresets: timescale.DefaultTimeScalePresets(),
		frameRatePresets: timescale.DefaultFrameRatePresets(),
		nudge:            config.DefaultNudge,
		historyCap:       config.DefaultHistory,
		duration:         timescale.TransitionDuration,
		width:            80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.ctrl = timescale.New(eng, clock, timescale.WithLogger(m.logger), timescale.WithTransitionDuration(m.duration))
	m.history = make([]float64, 0, m.historyCap)
	return m
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if len(cfg.Panel.TimeScalePresets) > 0 {
		m.timeScalePresets = cfg.TimeScalePresets()
	}
	if len(cfg.Panel.FrameRatePresets) > 0 {
		m.frameRatePresets = cfg.FrameRatePresets()
	}
	if cfg.Panel.NudgeTimeScale > 0 {
		m.nudge = cfg.Panel.NudgeTimeScale
	}
	if cfg.Panel.History > 0 {
		m.historyCap = cfg.Panel.History
	}
	if cfg.Panel.TransitionDuration > 0 {
		m.duration = cfg.Panel.TransitionDuration
		if m.ctrl != nil && m.ctrl.Duration() != m.duration {
			m.ctrl.SetDuration(m.duration)
		}
	}
}

// Controller exposes the panel's controller, mainly for tests.
func (m Model) Controller() *timescale.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd {
	return tick(m.eng.FrameInterval())
}

func tick(interval time.Duration) tea.Cmd {
	if interval < minTickInterval {
		interval = minTickInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case TickMsg:
		m.frame(time.Time(msg))
		return m, tick(m.eng.FrameInterval())
	case ConfigMsg:
		m.applyConfig(msg.Config)
		m.status = "config reloaded"
		m.logger.Info("config reloaded")
		return m, nil
	case ErrMsg:
		m.status = msg.Err.Error()
		m.logger.Warn("config reload failed", "err", msg.Err)
		return m, nil
	}
	return m, nil
}

// frame runs the per-tick work: step the engine by the wall time since the
// previous tick, then let the controller ease the time scale.
func (m *Model) frame(now time.Time) {
	if !m.lastTick.IsZero() {
		delta := now.Sub(m.lastTick)
		m.eng.Frame(delta)
		if delta > 0 {
			inst := 1 / delta.Seconds()
			if m.fps == 0 {
				m.fps = inst
			} else {
				m.fps += 0.1 * (inst - m.fps)
			}
		}
	}
	m.lastTick = now

	m.ctrl.Advance(m.clock.Now())

	m.history = append(m.history, m.ctrl.CurrentTimeScale())
	if len(m.history) > m.historyCap {
		m.history = m.history[len(m.history)-m.historyCap:]
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.ctrl.SetTargetTimeScale(timescale.ClampTimeScale(m.ctrl.TargetTimeScale() - m.nudge))
	case "right", "l":
		m.ctrl.SetTargetTimeScale(timescale.ClampTimeScale(m.ctrl.TargetTimeScale() + m.nudge))
	case "1", "2", "3", "4", "5":
		if i := int(key[0] - '1'); i < len(m.timeScalePresets) {
			m.ctrl.SetTargetTimeScale(m.timeScalePresets[i].Value)
		}
	case "-", "_":
		m.ctrl.SetTargetFrameRate(nudgeFrameRate(m.ctrl.TargetFrameRate(), -1))
	case "+", "=":
		m.ctrl.SetTargetFrameRate(nudgeFrameRate(m.ctrl.TargetFrameRate(), 1))
	case "6", "7", "8", "9", "0":
		if i := frameRatePresetIndex(key); i < len(m.frameRatePresets) {
			m.ctrl.SetTargetFrameRate(m.frameRatePresets[i].Value)
		}
	case "p":
		if m.eng.IsSimulating() {
			m.eng.Stop()
		} else {
			m.eng.Play()
		}
		m.lastTick = time.Time{}
		m.status = ""
	case " ":
		switch m.eng.Mode() {
		case engine.ModePlay:
			m.eng.Pause()
		case engine.ModePaused:
			m.eng.Resume()
			m.lastTick = time.Time{}
		}
	}
	return m, nil
}

// nudgeFrameRate steps fps by delta within the panel's range. 0 is not a
// frame rate, so the step goes straight between Uncapped and 1.
func nudgeFrameRate(fps, delta int) int {
	next := fps + delta
	if next == 0 {
		next += delta
	}
	return timescale.ClampFrameRate(next)
}

// frameRatePresetIndex maps the keys 6 7 8 9 0 to presets 0..4.
func frameRatePresetIndex(key string) int {
	if key == "0" {
		return 4
	}
	return int(key[0] - '6')
}
