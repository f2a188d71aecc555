// Package control provides control-input profiles for the point-mass
// aircraft model.
//
// A profile implements [dynamo.Profile] and yields one (nx, nz, p) triple
// per integration step:
//
//   - [Constant]: the same input at every step
//   - [Sequence]: an explicit per-step list
//   - [Schedule]: piecewise-constant segments keyed by time
//   - [Func]: any function of step index and time
//
// The reference scenario is [LevelFlight]: nx = 0, nz = 1, p = 0.
//
//	sim := dynamo.New(ac, integrators.NewEuler(), control.LevelFlight())
package control
