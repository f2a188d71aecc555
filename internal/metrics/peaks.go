package metrics

import (
	"math"

	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/physics"
)

// peak records the largest |f(x)| seen.
type peak struct {
	name string
	f    func(x dynamo.State) float64
	max  float64
}

func (p *peak) Name() string { return p.name }

func (p *peak) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if v := math.Abs(p.f(x)); v > p.max {
		p.max = v
	}
}

func (p *peak) Value() float64 { return p.max }
func (p *peak) Reset()         { p.max = 0 }

// NewPeakBank reports max |phi| in rad.
func NewPeakBank() dynamo.Metric {
	return &peak{name: "peak_bank", f: func(x dynamo.State) float64 { return x[physics.IdxPhi] }}
}

// NewAirspeedDeviation reports max |v - v0| in m/s.
func NewAirspeedDeviation(v0 float64) dynamo.Metric {
	return &peak{name: "airspeed_dev", f: func(x dynamo.State) float64 { return x[physics.IdxV] - v0 }}
}

// HeadingChange reports the heading turned through between the first and
// last samples, in rad.
type HeadingChange struct {
	first, last float64
	seen        bool
}

func NewHeadingChange() *HeadingChange { return &HeadingChange{} }

func (h *HeadingChange) Name() string { return "heading_change" }

func (h *HeadingChange) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if !h.seen {
		h.first = x[physics.IdxPsi]
		h.seen = true
	}
	h.last = x[physics.IdxPsi]
}

func (h *HeadingChange) Value() float64 { return h.last - h.first }

func (h *HeadingChange) Reset() {
	h.first, h.last, h.seen = 0, 0, false
}

// Defaults is the metric set attached to CLI runs.
func Defaults(gravity, v0 float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(gravity),
		NewEnvelope(0.5*v0, math.Pi/3, math.Pi/4),
		NewControlEffort(),
		NewPeakBank(),
		NewAirspeedDeviation(v0),
		NewHeadingChange(),
	}
}
