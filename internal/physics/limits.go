package physics

const (
	// MinAirspeed is the floor applied to v before it is used as a divisor,
	// in m/s.
	MinAirspeed = 0.1

	// MinTurnDenominator is the magnitude floor of v*cos(gamma) in the
	// heading rate. It handles gamma = ±π/2 independently of MinAirspeed.
	MinTurnDenominator = 1e-6
)

func safeAirspeed(v float64) float64 {
	if v < MinAirspeed {
		return MinAirspeed
	}
	return v
}
