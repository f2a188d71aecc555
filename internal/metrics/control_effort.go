package metrics

import (
	"math"

	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/physics"
)

// ControlEffort is the mean absolute deviation of the input from trim
// (nx = 0, nz = 1, p = 0), summed over the three channels.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	c.sum += math.Abs(u[physics.IdxNx]) + math.Abs(u[physics.IdxNz]-1) + math.Abs(u[physics.IdxP])
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
