// Package sweep drives the margin engine across a sequence of load
// multipliers and collects one record per scenario.
//
// What
//
//	Run asks an external Solver for a solved snapshot at every
//	multiplier, computes all margin families on it, and condenses each
//	into its worst value plus critical key. A scenario whose solve
//	fails is recorded as non-convergent and the sweep continues; every
//	other failure aborts the whole run. The snapshot's Jacobian, when
//	present, contributes its minimum singular value as a
//	proximity-to-singularity track.
//
// Concurrency
//
//	Scenarios are independent. WithWorkers dispatches them across a
//	bounded errgroup; records always land in multiplier order
//	regardless of completion order. The default is sequential.
//
// Output
//
//	WriteTable renders records as an aligned text table. SaveChart
//	draws the four worst-value tracks against the multiplier axis and
//	saves the figure; non-finite values and non-convergent scenarios
//	leave gaps rather than distorting the curves.
package sweep
