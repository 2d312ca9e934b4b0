package physics

import (
	"fmt"

	"github.com/san-kum/timescale/internal/dynamo"
)

// Lorenz is the classic chaotic attractor. State is [x, y, z].
type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz          { return &Lorenz{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0} }
func (l *Lorenz) StateDim() int   { return 3 }
func (l *Lorenz) ControlDim() int { return 0 }

func (l *Lorenz) Derive(s dynamo.State, _ dynamo.Control, _ float64) dynamo.State {
	return dynamo.State{
		l.Sigma * (s[1] - s[0]),
		s[0]*(l.Rho-s[2]) - s[1],
		s[0]*s[1] - l.Beta*s[2],
	}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(name string, v float64) error {
	switch name {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	default:
		return fmt.Errorf("lorenz %q: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}
