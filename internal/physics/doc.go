// Package physics provides the point-mass aircraft model.
//
// [Aircraft] implements the [dynamo.System] interface with the state
// (v, gamma, psi, phi) and the control input (nx, nz, p):
//
//	dv/dt     = g (nx - sin gamma)
//	dgamma/dt = g/v (nz cos gamma - cos phi)
//	dpsi/dt   = g nz sin phi / (v cos gamma)
//	dphi/dt   = p
//
// The individual derivatives are exported as plain functions. Division by
// airspeed and by v cos gamma is guarded by [MinAirspeed] and
// [MinTurnDenominator]; the guards clamp and never fail.
//
// Aircraft also implements [dynamo.Configurable] so gravity can be tuned:
//
//	ac := physics.NewAircraft(constants.Default().Physical)
//	_ = ac.SetParam("gravity", 9.81)
package physics
