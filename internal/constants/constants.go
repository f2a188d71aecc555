// Package constants provides the physical constants, unit conversions and
// reference values the point-mass aircraft model is configured with.
//
// Values are assembled once by [Default] and handed out by value, so no
// caller can change what another caller sees. Derived quantities in
// [Linearization] and [ControlDesign] are design outputs only; the
// integrator never reads them.
package constants

import (
	"fmt"
	"math"
)

const (
	// StandardGravity in m/s².
	StandardGravity = 9.80665

	DegToRadFactor = math.Pi / 180
	NauticalMile   = 1852.0
	KnotsToMsRatio = NauticalMile / 3600
	FootToMeter    = 0.3048
	FlightLevel    = 100 * FootToMeter
	FPMToMsRatio   = FootToMeter / 60
)

// Physical holds gravity and the unit conversion factors.
type Physical struct {
	G       float64
	Deg2Rad float64
	NM2M    float64
	Kts2Ms  float64
	Ft2M    float64
	FL2M    float64
	FPM2Ms  float64
}

// Validate reports the first non-positive factor. Angle conversion must
// match π/180.
func (p Physical) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"g", p.G},
		{"deg2rad", p.Deg2Rad},
		{"nm2m", p.NM2M},
		{"kts2ms", p.Kts2Ms},
		{"ft2m", p.Ft2M},
		{"fl2m", p.FL2M},
		{"fpm2ms", p.FPM2Ms},
	}
	for _, f := range fields {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("constants: %s must be positive, got %g", f.name, f.v)
		}
	}
	if math.Abs(p.Deg2Rad*180-math.Pi) > 1e-12 {
		return fmt.Errorf("constants: deg2rad inconsistent with pi/180: %g", p.Deg2Rad)
	}
	return nil
}

// Wind is carried as configuration only; the equations of motion do not
// couple it.
type Wind struct {
	FromHeading float64 // rad, direction the wind blows from
	Speed       float64 // m/s
}

type InitialConditions struct {
	V0     float64 // m/s
	Gamma0 float64 // rad
	Psi0   float64 // rad
	Phi0   float64 // rad
}

// State returns the initial conditions ordered as (v, gamma, psi, phi).
func (ic InitialConditions) State() []float64 {
	return []float64{ic.V0, ic.Gamma0, ic.Psi0, ic.Phi0}
}

func (ic InitialConditions) Validate() error {
	if !(ic.V0 > 0) || math.IsInf(ic.V0, 0) {
		return fmt.Errorf("constants: initial airspeed must be positive, got %g", ic.V0)
	}
	for _, v := range []float64{ic.Gamma0, ic.Psi0, ic.Phi0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("constants: initial angle must be finite, got %g", v)
		}
	}
	return nil
}

// Position seeds a flight-kinematics integrator (x, y, z in m). The
// dynamics model has no position states.
type Position struct {
	X, Y, Z float64
}

// Set is the complete configuration handed to the model and the CLI.
type Set struct {
	Physical      Physical
	Wind          Wind
	Initial       InitialConditions
	Position      Position
	Linearization Linearization
	ControlDesign ControlDesign
}

func DefaultPhysical() Physical {
	return Physical{
		G:       StandardGravity,
		Deg2Rad: DegToRadFactor,
		NM2M:    NauticalMile,
		Kts2Ms:  KnotsToMsRatio,
		Ft2M:    FootToMeter,
		FL2M:    FlightLevel,
		FPM2Ms:  FPMToMsRatio,
	}
}

// Default returns the reference scenario: 130 kt indicated, wings level,
// level flight, heading north, 30 kt of wind from 100°.
func Default() Set {
	p := DefaultPhysical()
	ic := InitialConditions{
		V0:     130 * p.Kts2Ms,
		Gamma0: 0 * p.Deg2Rad,
		Psi0:   0 * p.Deg2Rad,
		Phi0:   0 * p.Deg2Rad,
	}
	return Derive(p, ic, Position{})
}

// Derive builds a Set around arbitrary initial conditions, recomputing
// every derived quantity from them.
func Derive(p Physical, ic InitialConditions, pos Position) Set {
	lin := NewLinearization(p, ic, pos.Z)
	return Set{
		Physical: p,
		Wind: Wind{
			FromHeading: 100 * p.Deg2Rad,
			Speed:       30 * p.Kts2Ms,
		},
		Initial:       ic,
		Position:      pos,
		Linearization: lin,
		ControlDesign: NewControlDesign(p, lin.Ve),
	}
}

func KnotsToMs(kts float64) float64 { return kts * KnotsToMsRatio }
func MsToKnots(ms float64) float64  { return ms / KnotsToMsRatio }
func DegToRad(deg float64) float64  { return deg * DegToRadFactor }
func RadToDeg(rad float64) float64  { return rad / DegToRadFactor }
func FeetToM(ft float64) float64    { return ft * FootToMeter }
func FLToM(fl float64) float64      { return fl * FlightLevel }
