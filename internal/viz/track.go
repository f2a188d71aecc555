package viz

import (
	"math"

	"github.com/san-kum/pointmass/internal/dynamo"
	"github.com/san-kum/pointmass/internal/physics"
)

// TrackPoint is a position relative to the first sample, in meters.
type TrackPoint struct {
	North, East, Height float64
}

// GroundTrack reconstructs position from airspeed, flight-path angle and
// heading with the same forward-difference scheme as the integrator. The
// model carries no position state, so this is display-only.
func GroundTrack(r *dynamo.Result) []TrackPoint {
	n := r.Len()
	if n == 0 || len(r.Series) <= physics.IdxPsi {
		return nil
	}

	v := r.Series[physics.IdxV]
	gamma := r.Series[physics.IdxGamma]
	psi := r.Series[physics.IdxPsi]

	track := make([]TrackPoint, n)
	for k := 0; k < n-1; k++ {
		dt := r.Times[k+1] - r.Times[k]
		horiz := v[k] * math.Cos(gamma[k])
		track[k+1] = TrackPoint{
			North:  track[k].North + horiz*math.Cos(psi[k])*dt,
			East:   track[k].East + horiz*math.Sin(psi[k])*dt,
			Height: track[k].Height + v[k]*math.Sin(gamma[k])*dt,
		}
	}
	return track
}
