// Package dynamo provides core simulation primitives for the point-mass
// aircraft model.
//
// The package defines the fundamental interfaces and types for fixed-step
// numerical simulation of ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper interface
//   - [Profile]: time-indexed control input source
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	ac := physics.NewAircraft(constants.Default().Physical)
//	sim := dynamo.New(ac, integrators.NewEuler(), control.LevelFlight())
//	result, err := sim.Run(ctx, ic.State(), dynamo.DefaultConfig())
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Each call to Run allocates and
// owns its own [Result]; results are never mutated after Run returns.
package dynamo
