// Package zbus reduces a bus admittance matrix at the slack bus and
// inverts the remainder, producing the impedance matrix the
// injection-based voltage margin is built on.
//
// What
//
//	Reduce deletes the slack row and column from Y (solver-internal
//	ordering), inverts the reduced matrix, and returns Z together with
//	Keep, the ordered internal bus indices the reduced rows/columns map
//	to. A singular reduced matrix is reported as ErrSingular; no
//	pseudo-inverse is ever substituted.
//
// Numerical contract
//
//	For a well-posed network, Y_reduced·Z_reduced recovers the identity to
//	tight tolerance (1e-9 relative), which is the property tests pin down.
//
// Complexity
//
//	O(n³) time and O(n²) memory in the number of kept buses.
package zbus
