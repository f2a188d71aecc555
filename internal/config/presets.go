package config

import (
	"sort"

	"github.com/brunoga/deep"
)

var Presets = map[string]*Config{
	"level": {
		Description: "straight and level, trimmed",
		Integrator: "euler", Dt: 0.01, TFinal: 10.0,
		InitState: InitStateConfig{AirspeedKts: 130},
		Control:   ControlConfig{Nz: 1},
	},
	"climb": {
		Description: "steady 3° climb",
		Integrator: "euler", Dt: 0.01, TFinal: 60.0,
		InitState: InitStateConfig{AirspeedKts: 130, GammaDeg: 3},
		// nx = sin(3°) holds airspeed, nz = 1/cos(3°) holds gamma
		Control: ControlConfig{Nx: 0.0523360, Nz: 1.0013723},
	},
	"turn": {
		Description: "30° bank held for two minutes",
		Integrator: "euler", Dt: 0.01, TFinal: 120.0,
		InitState: InitStateConfig{AirspeedKts: 130, PhiDeg: 30},
		// nz = cos(30°) holds gamma at zero with this bank
		Control: ControlConfig{Nz: 0.8660254},
	},
	"roll": {
		Description: "roll in to 25° and back out",
		Integrator: "euler", Dt: 0.01, TFinal: 30.0,
		InitState: InitStateConfig{AirspeedKts: 130},
		Control: ControlConfig{Segments: []SegmentConfig{
			{Start: 0, Nz: 1, PDegS: 5},
			{Start: 5, Nz: 1},
			{Start: 20, Nz: 1, PDegS: -5},
			{Start: 25, Nz: 1},
		}},
	},
	"pullup": {
		Description: "2 g pull-up then release",
		Integrator: "euler", Dt: 0.01, TFinal: 20.0,
		InitState: InitStateConfig{AirspeedKts: 130},
		Control: ControlConfig{Segments: []SegmentConfig{
			{Start: 0, Nz: 2},
			{Start: 2, Nz: 1},
		}},
	},
	"decel": {
		Description: "idle deceleration in level flight",
		Integrator: "euler", Dt: 0.01, TFinal: 10.0,
		InitState: InitStateConfig{AirspeedKts: 130},
		Control:   ControlConfig{Nx: -0.5, Nz: 1},
	},
}

// GetPreset returns a deep copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return deep.MustCopy(p)
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
