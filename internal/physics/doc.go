// Package physics provides the models the engine can run while the time
// scale is being adjusted.
//
// Each model implements [dynamo.System]:
//
//   - [Pendulum]: damped rigid pendulum
//   - [SpringMass]: damped harmonic oscillator
//   - [Lorenz]: butterfly attractor
//
// Models are looked up by name through [New]. Pendulum and SpringMass also
// implement [dynamo.Hamiltonian] so the panel can show their energy.
package physics
