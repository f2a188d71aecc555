package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pointmass/internal/constants"
	"github.com/san-kum/pointmass/internal/dynamo"
)

// State and control vector layout.
const (
	IdxV = iota
	IdxGamma
	IdxPsi
	IdxPhi
)

const (
	IdxNx = iota
	IdxNz
	IdxP
)

// StateNames labels the state components in index order.
var StateNames = []string{"v", "gamma", "psi", "phi"}

// ControlNames labels the control components in index order.
var ControlNames = []string{"nx", "nz", "p"}

// VDot is the airspeed rate from the net along-path load factor.
func VDot(g, nx, gamma float64) float64 {
	return g * (nx - math.Sin(gamma))
}

// GammaDot is the flight-path angle rate. Airspeed is floored at
// MinAirspeed.
func GammaDot(g, nz, gamma, v, phi float64) float64 {
	return (g / safeAirspeed(v)) * (nz*math.Cos(gamma) - math.Cos(phi))
}

// PsiDot is the heading rate. Airspeed is floored at MinAirspeed, then a
// denominator smaller than MinTurnDenominator in magnitude is replaced by
// MinTurnDenominator.
func PsiDot(g, nz, phi, v, gamma float64) float64 {
	den := safeAirspeed(v) * math.Cos(gamma)
	if math.Abs(den) < MinTurnDenominator {
		den = MinTurnDenominator
	}
	return (g * math.Sin(phi) * nz) / den
}

func PhiDot(p float64) float64 {
	return p
}

type Aircraft struct {
	Gravity float64
}

var (
	_ dynamo.System       = (*Aircraft)(nil)
	_ dynamo.Configurable = (*Aircraft)(nil)
)

func NewAircraft(p constants.Physical) *Aircraft {
	return &Aircraft{Gravity: p.G}
}

func (a *Aircraft) StateDim() int   { return 4 }
func (a *Aircraft) ControlDim() int { return 3 }

func (a *Aircraft) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	v, gamma, phi := x[IdxV], x[IdxGamma], x[IdxPhi]
	nx, nz, p := u[IdxNx], u[IdxNz], u[IdxP]

	return dynamo.State{
		VDot(a.Gravity, nx, gamma),
		GammaDot(a.Gravity, nz, gamma, v, phi),
		PsiDot(a.Gravity, nz, phi, v, gamma),
		PhiDot(p),
	}
}

func (a *Aircraft) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": a.Gravity,
	}
}

func (a *Aircraft) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		if !(value > 0) {
			return fmt.Errorf("gravity must be positive, got %f", value)
		}
		a.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
