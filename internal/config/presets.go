package config

import "sort"

// Presets are named engine setups per model, selectable with --preset.
var Presets = map[string]map[string]EngineConfig{
	"pendulum": {
		"small":    {Model: "pendulum", Integrator: "rk4", Dt: 0.01, InitState: []float64{0.2, 0.0}},
		"large":    {Model: "pendulum", Integrator: "rk4", Dt: 0.01, InitState: []float64{2.5, 0.0}},
		"spinning": {Model: "pendulum", Integrator: "rk4", Dt: 0.005, InitState: []float64{0.1, 8.0}, Params: map[string]float64{"damping": 0}},
		"damped":   {Model: "pendulum", Integrator: "rk4", Dt: 0.01, InitState: []float64{1.5, 0.0}, Params: map[string]float64{"damping": 0.8}},
	},
	"spring_mass": {
		"bounce": {Model: "spring_mass", Integrator: "verlet", Dt: 0.01, InitState: []float64{2.0, 0.0}},
		"fast":   {Model: "spring_mass", Integrator: "euler", Dt: 0.001, InitState: []float64{1.0, 5.0}},
	},
	"lorenz": {
		"classic": {Model: "lorenz", Integrator: "rk4", Dt: 0.005, InitState: []float64{1, 1, 1}},
		"offset":  {Model: "lorenz", Integrator: "rk4", Dt: 0.005, InitState: []float64{-8, 7, 27}},
		"calm":    {Model: "lorenz", Integrator: "rk4", Dt: 0.005, InitState: []float64{1, 1, 1}, Params: map[string]float64{"rho": 14}},
	},
}

// GetPreset returns the named preset for model, or nil.
func GetPreset(model, preset string) *EngineConfig {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset copies the preset's model, integrator, dt, initial state and
// params into c. Frame rate and time scale settings are left alone.
func (c *Config) ApplyPreset(model, preset string) bool {
	p := GetPreset(model, preset)
	if p == nil {
		return false
	}
	c.Engine.Model = p.Model
	c.Engine.Integrator = p.Integrator
	c.Engine.Dt = p.Dt
	c.Engine.InitState = append([]float64(nil), p.InitState...)
	c.Engine.Params = nil
	if len(p.Params) > 0 {
		c.Engine.Params = make(map[string]float64, len(p.Params))
		for k, v := range p.Params {
			c.Engine.Params[k] = v
		}
	}
	return true
}
