package metrics

import (
	"math"

	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/physics"
)

// Envelope reports the fraction of samples inside a flight envelope:
// airspeed at or above minSpeed and |phi|, |gamma| within their limits.
type Envelope struct {
	name       string
	minSpeed   float64
	maxBank    float64
	maxGamma   float64
	violations int
	samples    int
}

func NewEnvelope(minSpeed, maxBank, maxGamma float64) *Envelope {
	return &Envelope{
		name:     "envelope",
		minSpeed: minSpeed,
		maxBank:  maxBank,
		maxGamma: maxGamma,
	}
}

func (e *Envelope) Name() string {
	return e.name
}

func (e *Envelope) Observe(x dynamo.State, u dynamo.Control, t float64) {
	e.samples++
	if x[physics.IdxV] < e.minSpeed ||
		math.Abs(x[physics.IdxPhi]) > e.maxBank ||
		math.Abs(x[physics.IdxGamma]) > e.maxGamma {
		e.violations++
	}
}

func (e *Envelope) Value() float64 {
	if e.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(e.violations)/float64(e.samples)
}

func (e *Envelope) Reset() {
	e.violations = 0
	e.samples = 0
}
