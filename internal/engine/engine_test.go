package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/timescale/internal/dynamo"
	"github.com/san-kum/timescale/internal/integrators"
	"github.com/san-kum/timescale/internal/physics"
	"github.com/san-kum/timescale/internal/timescale"
)

// drift moves x[0] at unit speed, so simulated time can be read off the state.
type drift struct{}

func (drift) Derive(x dynamo.State, _ dynamo.Control, _ float64) dynamo.State {
	return dynamo.State{1}
}
func (drift) StateDim() int   { return 1 }
func (drift) ControlDim() int { return 0 }

// blowup returns NaN derivatives.
type blowup struct{}

func (blowup) Derive(x dynamo.State, _ dynamo.Control, _ float64) dynamo.State {
	return dynamo.State{math.NaN()}
}
func (blowup) StateDim() int   { return 1 }
func (blowup) ControlDim() int { return 0 }

func newDriftEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(drift{}, integrators.NewEuler(), dynamo.State{0}, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewRejectsWrongStateDim(t *testing.T) {
	_, err := New(physics.NewPendulum(), integrators.NewRK4(), dynamo.State{1}, DefaultConfig())
	if err == nil {
		t.Fatal("expected error for short initial state")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	e := newDriftEngine(t, Config{TimeScale: 1, TargetFrameRate: 60})
	if e.cfg.Dt != DefaultDt || e.cfg.MaxFrameRate != DefaultMaxFrameRate {
		t.Errorf("defaults not applied: %+v", e.cfg)
	}
	if e.Mode() != ModeEdit || e.IsSimulating() {
		t.Error("engine should start in edit mode")
	}
}

func TestSetTargetFrameRateCoercion(t *testing.T) {
	e := newDriftEngine(t, DefaultConfig())

	tests := []struct {
		in, want int
	}{
		{60, 60},
		{timescale.Uncapped, timescale.Uncapped},
		{0, timescale.Uncapped},
		{-7, timescale.Uncapped},
		{1000, DefaultMaxFrameRate},
		{1, 1},
	}
	for _, tt := range tests {
		e.SetTargetFrameRate(tt.in)
		if got := e.TargetFrameRate(); got != tt.want {
			t.Errorf("SetTargetFrameRate(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSetTimeScaleClamp(t *testing.T) {
	e := newDriftEngine(t, DefaultConfig())

	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{-1, 0},
		{1e9, MaxHostTimeScale},
	}
	for _, tt := range tests {
		e.SetTimeScale(tt.in)
		if got := e.TimeScale(); got != tt.want {
			t.Errorf("SetTimeScale(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}

	e.SetTimeScale(math.NaN())
	if e.TimeScale() != MaxHostTimeScale {
		t.Error("NaN should leave time scale untouched")
	}
}

func TestFrameOnlyAdvancesInPlay(t *testing.T) {
	e := newDriftEngine(t, DefaultConfig())

	if n := e.Frame(100 * time.Millisecond); n != 0 {
		t.Errorf("edit mode took %d steps", n)
	}

	e.Play()
	if n := e.Frame(100 * time.Millisecond); n < 9 || n > 10 {
		t.Errorf("play mode took %d steps, want ~10", n)
	}

	e.Pause()
	if !e.IsSimulating() {
		t.Error("paused engine is still in play mode")
	}
	if n := e.Frame(100 * time.Millisecond); n != 0 {
		t.Errorf("paused took %d steps", n)
	}
}

func TestFrameScalesTime(t *testing.T) {
	tests := []struct {
		scale float64
		want  float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 2},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.TimeScale = tt.scale
		e := newDriftEngine(t, cfg)
		e.Play()
		for i := 0; i < 100; i++ {
			e.Frame(10 * time.Millisecond)
		}
		if math.Abs(e.SimTime()-tt.want) > cfg.Dt+1e-9 {
			t.Errorf("scale %v: sim time %v, want ~%v", tt.scale, e.SimTime(), tt.want)
		}
		if math.Abs(e.State()[0]-e.SimTime()) > 1e-9 {
			t.Errorf("scale %v: state %v does not track sim time %v", tt.scale, e.State()[0], e.SimTime())
		}
	}
}

func TestFrameSubstepCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSubsteps = 5
	e := newDriftEngine(t, cfg)
	e.Play()

	if n := e.Frame(time.Second); n != 5 {
		t.Fatalf("took %d steps, want 5", n)
	}
	if n := e.Frame(time.Millisecond); n != 0 {
		t.Errorf("leftover time was carried over: %d steps", n)
	}
}

func TestStopRestoresInitialState(t *testing.T) {
	e := newDriftEngine(t, DefaultConfig())
	e.SetTimeScale(0.3)
	e.Play()
	e.Frame(time.Second)
	e.Stop()

	if e.Mode() != ModeEdit {
		t.Errorf("mode = %v, want EDIT", e.Mode())
	}
	if e.SimTime() != 0 || e.State()[0] != 0 || e.Steps() != 0 {
		t.Errorf("state not restored: t=%v x=%v steps=%d", e.SimTime(), e.State(), e.Steps())
	}
	if e.TimeScale() != 0.3 {
		t.Errorf("time scale should survive stop, got %v", e.TimeScale())
	}
}

func TestFrameDivergencePauses(t *testing.T) {
	e, err := New(blowup{}, integrators.NewEuler(), dynamo.State{1}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	e.Play()
	e.Frame(time.Second)

	if e.Mode() != ModePaused {
		t.Errorf("mode = %v, want PAUSED", e.Mode())
	}
	if !errors.Is(e.Err(), dynamo.ErrUnstable) {
		t.Errorf("Err() = %v, want ErrUnstable", e.Err())
	}
	if !e.State().IsValid() {
		t.Error("invalid state was committed")
	}
}

func TestFrameInterval(t *testing.T) {
	e := newDriftEngine(t, DefaultConfig())

	e.SetTargetFrameRate(50)
	if got := e.FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("50 fps interval = %v", got)
	}
	e.SetTargetFrameRate(timescale.Uncapped)
	if got := e.FrameInterval(); got != DefaultUncappedRefresh {
		t.Errorf("uncapped interval = %v", got)
	}
}

func TestEnergy(t *testing.T) {
	e, err := New(physics.NewPendulum(), integrators.NewRK4(), dynamo.State{0, 0}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if e.Energy() != 0 {
		t.Errorf("energy at rest = %v", e.Energy())
	}
	if !math.IsNaN(newDriftEngine(t, DefaultConfig()).Energy()) {
		t.Error("system without energy should report NaN")
	}
}

func TestModeString(t *testing.T) {
	if ModePlay.String() != "PLAYING" || Mode(9).String() != "Mode(9)" {
		t.Error("unexpected mode names")
	}
}
