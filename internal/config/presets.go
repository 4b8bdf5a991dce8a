package config

import "sort"

// Presets are ready-made run configurations per model.
var Presets = map[string]map[string]*Config{
	"spring": {
		"rest": {
			Model: "spring", Solver: "rk4", Granularity: string(Normal),
			Duration: 10.0, InitState: []float64{0, 0},
		},
		"stretched": {
			Model: "spring", Solver: "rk4", Granularity: string(Normal),
			Duration: 10.0, InitState: []float64{1.0, 0},
			Params: map[string]float64{"gravity": 0, "damping": 0},
		},
		"damped": {
			Model: "spring", Solver: "adaptive-rk45", Granularity: string(Normal),
			Duration: 20.0, InitState: []float64{1.0, 0},
			Params: map[string]float64{"damping": 0.5},
		},
	},
	"two-springs": {
		"in-phase": {
			Model: "two-springs", Solver: "pefrl", Granularity: string(Normal),
			Duration: 20.0, InitState: []float64{1.0, 1.0, 0, 0},
		},
		"out-of-phase": {
			Model: "two-springs", Solver: "pefrl", Granularity: string(Normal),
			Duration: 20.0, InitState: []float64{1.0, -1.0, 0, 0},
		},
	},
	"pendulum": {
		"small-angle": {
			Model: "pendulum", Solver: "rk4", Granularity: string(Normal),
			Duration: 20.0, InitState: []float64{0.1, 0},
			Params: map[string]float64{"damping": 0},
		},
		"large-angle": {
			Model: "pendulum", Solver: "adaptive-rk45", Granularity: string(Normal),
			Duration: 20.0, InitState: []float64{2.5, 0},
			Params: map[string]float64{"damping": 0},
		},
		"spinning": {
			Model: "pendulum", Solver: "adaptive-rk45", Granularity: string(Normal),
			Duration: 30.0, InitState: []float64{0.1, 8.0},
		},
	},
	"double-pendulum": {
		"symmetric": {
			Model: "double-pendulum", Solver: "dormand-prince-87",
			Granularity: string(Fine), Duration: 30.0,
			InitState: []float64{0.5, 0.5, 0, 0},
		},
		"chaotic": {
			Model: "double-pendulum", Solver: "dormand-prince-87",
			Granularity: string(Fine), Duration: 30.0,
			InitState: []float64{2.0, 2.0, 0, 0},
		},
	},
}

// GetPreset returns nil when the model or preset name is unknown.
func GetPreset(model, name string) *Config {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	return group[name]
}

// ListPresets returns the preset names for a model, sorted.
func ListPresets(model string) []string {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
