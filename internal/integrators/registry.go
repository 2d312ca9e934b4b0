package integrators

import (
	"fmt"

	"github.com/san-kum/timescale/internal/dynamo"
)

// New returns the named fixed-step integrator ("euler", "rk4" or "verlet").
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4", "":
		return NewRK4(), nil
	case "verlet":
		return NewVerlet(), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownIntegrator)
	}
}
