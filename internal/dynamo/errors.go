package dynamo

import "errors"

var (
	// ErrUnstable indicates the state went NaN or Inf during a step.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrUnknownSystem is returned by registries for names they do not know.
	ErrUnknownSystem = errors.New("dynamo: unknown system")

	// ErrUnknownIntegrator is returned by registries for names they do not know.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownParam is returned by Configurable systems.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// StepError carries the simulation time and step at which a step failed.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
