package integrators

import "github.com/san-kum/timescale/internal/dynamo"

// Verlet is velocity Verlet for states laid out as positions then
// velocities of equal length. Odd-length states fall back to RK4.
type Verlet struct {
	fallback *RK4
}

func NewVerlet() *Verlet {
	return &Verlet{fallback: NewRK4()}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	if n == 0 || n%2 != 0 {
		return v.fallback.Step(dyn, x, u, t, dt)
	}
	half := n / 2

	acc := dyn.Derive(x, u, t)
	next := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		next[i] = x[i] + x[half+i]*dt + 0.5*acc[half+i]*dt*dt
		next[half+i] = x[half+i]
	}

	accNext := dyn.Derive(next, u, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] = x[half+i] + 0.5*(acc[half+i]+accNext[half+i])*dt
	}
	return next
}
