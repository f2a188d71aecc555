package metrics

import (
	"math"

	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/physics"
)

// EnergyDrift tracks the specific energy height h + v²/2g, with h
// reconstructed from v sin(gamma) between samples, and reports the largest
// relative departure from its first value. Without along-path thrust the
// exact solution conserves it, so the drift measures integration error.
type EnergyDrift struct {
	name     string
	gravity  float64
	h        float64
	initial  float64
	maxDrift float64
	prevT    float64
	prevRate float64
	samples  int
}

func NewEnergyDrift(gravity float64) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: gravity,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, u dynamo.Control, t float64) {
	v, gamma := x[physics.IdxV], x[physics.IdxGamma]
	if e.samples > 0 {
		e.h += e.prevRate * (t - e.prevT)
	}
	energy := e.h + v*v/(2*e.gravity)

	if e.samples == 0 {
		e.initial = energy
	} else if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}

	e.prevT = t
	e.prevRate = v * math.Sin(gamma)
	e.samples++
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Altitude is the height gained since the first sample, in m.
func (e *EnergyDrift) Altitude() float64 {
	return e.h
}

func (e *EnergyDrift) Reset() {
	e.h = 0
	e.initial = 0
	e.maxDrift = 0
	e.prevT = 0
	e.prevRate = 0
	e.samples = 0
}
