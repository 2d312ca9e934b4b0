// Package dynamo holds the primitives shared by the simulated workloads the
// engine runs:
//
//   - [State]: vector representing system state
//   - [System]: ODE right-hand side (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [Hamiltonian]: optional energy readout
//
// Nothing in this package knows about wall-clock time or time scale; the
// engine decides how much simulated time each frame covers.
package dynamo
