package constants

import "math"

// Linearization is the trim point used to derive a linear model:
// state (Ve, gamma, psi, phi) and input (nx, nz, p).
type Linearization struct {
	// K is the airspeed gain with altitude, 1 kt per 2 flight levels.
	K     float64
	Ve    float64
	State [4]float64
	Input [3]float64
}

func NewLinearization(p Physical, ic InitialConditions, z float64) Linearization {
	k := p.Kts2Ms / (2 * p.FL2M)
	ve := ic.V0 + k*z
	return Linearization{
		K:     k,
		Ve:    ve,
		State: [4]float64{ve, ic.Gamma0, ic.Psi0, ic.Phi0},
		Input: [3]float64{math.Sin(ic.Gamma0), math.Cos(ic.Gamma0), 0},
	}
}

// ControlDesign holds the gains and time constants of the cascaded
// longitudinal and lateral control laws.
type ControlDesign struct {
	// lateral
	K11      float64
	K22      float64
	TauGamma float64
	TauH     float64

	// longitudinal
	Damping     float64
	NaturalFreq float64
	K1          float64
	K2          float64

	// lateral, inner loops
	TauPhi float64
	TauPsi float64

	// axis capture
	TauEy float64
	Xa    float64
	Ya    float64
	RhoA  float64

	// sampling period, s
	Ts float64
}

func NewControlDesign(p Physical, ve float64) ControlDesign {
	const (
		k11     = 0.1
		k22     = 1.0
		damping = 0.9
		w0      = 0.1
		tauPhi  = 0.4
	)

	tauGamma := ve / (p.G * k22)
	tauPsi := 10 * tauPhi

	return ControlDesign{
		K11:         k11,
		K22:         k22,
		TauGamma:    tauGamma,
		TauH:        5 * tauGamma, // tauH >> tauGamma
		Damping:     damping,
		NaturalFreq: w0,
		K1:          w0 * w0 * ve / p.G,
		K2:          2 * damping * w0,
		TauPhi:      tauPhi,
		TauPsi:      tauPsi, // tauPsi >> tauPhi
		TauEy:       5 * tauPsi,
		Xa:          1000,
		Ya:          2500,
		RhoA:        180 * p.Deg2Rad,
		Ts:          1,
	}
}

// Params flattens the design values for display.
func (c ControlDesign) Params() map[string]float64 {
	return map[string]float64{
		"k11":       c.K11,
		"k22":       c.K22,
		"tau_gamma": c.TauGamma,
		"tau_h":     c.TauH,
		"damping":   c.Damping,
		"w0":        c.NaturalFreq,
		"k1":        c.K1,
		"k2":        c.K2,
		"tau_phi":   c.TauPhi,
		"tau_psi":   c.TauPsi,
		"tau_ey":    c.TauEy,
		"xa":        c.Xa,
		"ya":        c.Ya,
		"rho_a":     c.RhoA,
		"ts":        c.Ts,
	}
}
