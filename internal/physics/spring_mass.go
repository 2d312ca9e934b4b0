package physics

import (
	"fmt"

	"github.com/san-kum/timescale/internal/dynamo"
)

// SpringMass is a single damped mass on a spring. State is [pos, vel].
type SpringMass struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewSpringMass() *SpringMass {
	return &SpringMass{Mass: DefaultMass, Stiffness: 10.0, Damping: 0.5}
}

func (s *SpringMass) StateDim() int   { return 2 }
func (s *SpringMass) ControlDim() int { return 1 }

func (s *SpringMass) Derive(x dynamo.State, u dynamo.Control, _ float64) dynamo.State {
	force := -s.Stiffness*x[0] - s.Damping*x[1]
	if len(u) > 0 {
		force += u[0]
	}
	return dynamo.State{x[1], force / s.Mass}
}

func (s *SpringMass) Energy(x dynamo.State) float64 {
	return 0.5*s.Mass*x[1]*x[1] + 0.5*s.Stiffness*x[0]*x[0]
}

func (s *SpringMass) GetParams() map[string]float64 {
	return map[string]float64{"mass": s.Mass, "stiffness": s.Stiffness, "damping": s.Damping}
}

func (s *SpringMass) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		s.Mass = value
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	default:
		return fmt.Errorf("spring_mass %q: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}
