package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/timescale/internal/dynamo"
)

type entry struct {
	build func() dynamo.System
	init  dynamo.State
}

var registry = map[string]entry{
	"pendulum":    {func() dynamo.System { return NewPendulum() }, dynamo.State{0.5, 0}},
	"spring_mass": {func() dynamo.System { return NewSpringMass() }, dynamo.State{1.0, 0}},
	"lorenz":      {func() dynamo.System { return NewLorenz() }, dynamo.State{1, 1, 1}},
}

// New builds the named system.
func New(name string) (dynamo.System, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownSystem)
	}
	return e.build(), nil
}

// DefaultState returns a fresh copy of the named system's starting state, or
// nil if the name is unknown.
func DefaultState(name string) dynamo.State {
	e, ok := registry[name]
	if !ok {
		return nil
	}
	return e.init.Clone()
}

// Configure applies params to sys in name order. Systems that are not
// dynamo.Configurable accept no params.
func Configure(sys dynamo.System, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	c, ok := sys.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("%T takes no params: %w", sys, dynamo.ErrUnknownParam)
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
