package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pointmass/internal/constants"
	"github.com/san-kum/pointmass/internal/control"
	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/flight"
	"github.com/san-kum/pointmass/internal/integrators"
)

const (
	DefaultDt          = dynamo.DefaultDt
	DefaultTInitial    = 0.0
	DefaultTFinal      = 10.0
	DefaultAirspeedKts = 130.0
	DefaultNz          = 1.0
)

// Config describes one run in pilot units: knots, degrees, feet. It is
// converted to SI through the constants package.
type Config struct {
	Description string `yaml:"description,omitempty"`

	Integrator string          `yaml:"integrator"`
	TInitial   float64         `yaml:"t_initial"`
	TFinal     float64         `yaml:"t_final"`
	Dt         float64         `yaml:"dt"`
	Gravity    float64         `yaml:"gravity,omitempty"`
	InitState  InitStateConfig `yaml:"init_state"`
	Control    ControlConfig   `yaml:"control"`
}

type InitStateConfig struct {
	AirspeedKts float64 `yaml:"airspeed_kts"`
	GammaDeg    float64 `yaml:"gamma_deg"`
	PsiDeg      float64 `yaml:"psi_deg"`
	PhiDeg      float64 `yaml:"phi_deg"`
	AltitudeFt  float64 `yaml:"altitude_ft,omitempty"`
}

// ControlConfig is either a constant input or, when Segments is set, a
// piecewise-constant schedule.
type ControlConfig struct {
	Nx       float64         `yaml:"nx"`
	Nz       float64         `yaml:"nz"`
	PDegS    float64         `yaml:"p_deg_s"`
	Segments []SegmentConfig `yaml:"segments,omitempty"`
}

type SegmentConfig struct {
	Start float64 `yaml:"start"`
	Nx    float64 `yaml:"nx"`
	Nz    float64 `yaml:"nz"`
	PDegS float64 `yaml:"p_deg_s"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: integrators.Default,
		TInitial:   DefaultTInitial,
		TFinal:     DefaultTFinal,
		Dt:         DefaultDt,
		InitState: InitStateConfig{
			AirspeedKts: DefaultAirspeedKts,
		},
		Control: ControlConfig{
			Nz: DefaultNz,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Physical() constants.Physical {
	p := constants.DefaultPhysical()
	if c.Gravity != 0 {
		p.G = c.Gravity
	}
	return p
}

func (c *Config) InitialConditions() constants.InitialConditions {
	return constants.InitialConditions{
		V0:     constants.KnotsToMs(c.InitState.AirspeedKts),
		Gamma0: constants.DegToRad(c.InitState.GammaDeg),
		Psi0:   constants.DegToRad(c.InitState.PsiDeg),
		Phi0:   constants.DegToRad(c.InitState.PhiDeg),
	}
}

// Constants derives the full constant set, including the linearization
// point at the configured altitude.
func (c *Config) Constants() constants.Set {
	pos := constants.Position{Z: constants.FeetToM(c.InitState.AltitudeFt)}
	return constants.Derive(c.Physical(), c.InitialConditions(), pos)
}

func (c *Config) Profile() (dynamo.Profile, error) {
	if len(c.Control.Segments) == 0 {
		return control.NewConstant(control.Input{
			Nx: c.Control.Nx,
			Nz: c.Control.Nz,
			P:  constants.DegToRad(c.Control.PDegS),
		}), nil
	}

	segments := make([]control.Segment, len(c.Control.Segments))
	for i, s := range c.Control.Segments {
		segments[i] = control.Segment{
			Start: s.Start,
			Input: control.Input{Nx: s.Nx, Nz: s.Nz, P: constants.DegToRad(s.PDegS)},
		}
	}
	return control.NewSchedule(segments)
}

// Scenario resolves the integrator and profile and assembles a runnable
// scenario. Time-span validation is left to the simulator.
func (c *Config) Scenario() (flight.Scenario, error) {
	integ, err := integrators.Get(c.Integrator)
	if err != nil {
		return flight.Scenario{}, err
	}
	profile, err := c.Profile()
	if err != nil {
		return flight.Scenario{}, err
	}

	return flight.Scenario{
		Physical:   c.Physical(),
		Initial:    c.InitialConditions(),
		Profile:    profile,
		TInitial:   c.TInitial,
		TFinal:     c.TFinal,
		Dt:         c.Dt,
		Integrator: integ,
	}, nil
}
