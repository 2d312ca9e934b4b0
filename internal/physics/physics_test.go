package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/timescale/internal/dynamo"
)

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0

	dx := p.Derive(dynamo.State{0, 0}, dynamo.Control{0}, 0)

	if math.Abs(dx[0]) > 1e-10 {
		t.Errorf("expected zero velocity at equilibrium, got %f", dx[0])
	}
	if math.Abs(dx[1]) > 1e-10 {
		t.Errorf("expected zero acceleration at equilibrium, got %f", dx[1])
	}
}

func TestPendulumGravity(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0

	dx := p.Derive(dynamo.State{math.Pi / 2, 0}, nil, 0)

	expectedAccel := -p.Gravity / p.Length
	if math.Abs(dx[1]-expectedAccel) > 1e-6 {
		t.Errorf("expected acceleration %f, got %f", expectedAccel, dx[1])
	}
}

func TestSpringMassEnergy(t *testing.T) {
	s := NewSpringMass()
	got := s.Energy(dynamo.State{1, 0})
	if math.Abs(got-0.5*s.Stiffness) > 1e-12 {
		t.Errorf("expected energy %f, got %f", 0.5*s.Stiffness, got)
	}
}

func TestSetParamUnknown(t *testing.T) {
	systems := []dynamo.Configurable{NewPendulum(), NewSpringMass(), NewLorenz()}
	for _, sys := range systems {
		if err := sys.SetParam("nope", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
			t.Errorf("%T: expected ErrUnknownParam, got %v", sys, err)
		}
	}
}

func TestConfigure(t *testing.T) {
	sys, err := New("lorenz")
	if err != nil {
		t.Fatal(err)
	}
	if err := Configure(sys, map[string]float64{"rho": 14, "sigma": 9}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	params := sys.(dynamo.Configurable).GetParams()
	if params["rho"] != 14 || params["sigma"] != 9 || params["beta"] != 8.0/3.0 {
		t.Errorf("params not applied: %v", params)
	}

	if err := Configure(sys, nil); err != nil {
		t.Errorf("empty params should be a no-op, got %v", err)
	}
	if err := Configure(sys, map[string]float64{"mass": 1}); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		sys, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		x0 := DefaultState(name)
		if len(x0) != sys.StateDim() {
			t.Errorf("%s: default state has %d entries, want %d", name, len(x0), sys.StateDim())
		}
	}

	if _, err := New("nonexistent"); !errors.Is(err, dynamo.ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
	if DefaultState("nonexistent") != nil {
		t.Error("expected nil state for unknown system")
	}
}

func TestDefaultStateIsCopy(t *testing.T) {
	a := DefaultState("pendulum")
	a[0] = 42
	if b := DefaultState("pendulum"); b[0] == 42 {
		t.Error("DefaultState returned shared storage")
	}
}
