// Package lindex computes the Kessel–Glavitsch L-index, the
// load-bus voltage-stability indicator derived from the bus admittance
// matrix of a solved network.
//
// What
//
//	Buses are partitioned into a generator set G (slack plus designated
//	generators) and a load set L (the complement). From the partitioned
//	admittance matrix the transfer matrix F = -Y_LL⁻¹·Y_LG is solved once,
//	and each load bus i gets
//
//	    L_i = |1 − Σ_g F[i,g]·(V_g / V_i)|
//
//	A load bus whose voltage magnitude is below DegenerateVoltageTol is
//	assigned +Inf, the collapse sentinel. The result carries every load
//	bus's value, the maximum, and its bus.
//
// Reading the value
//
//	Unlike the determinant margins, HIGHER is worse here: L below 1 is the
//	stable region and the maximum over load buses is the critical value.
//	The inverted sense is deliberate and preserved; consumers tag it
//	rather than renormalize.
//
// Options
//
//   - WithGeneratorBuses overrides the generator set.
//   - WithLoadBuses overrides the load set (kept in caller order).
//
// Errors
//
//   - ErrEmptyPartition when either set ends up empty (checked before any
//     numerical work).
//   - ErrNilTopology / ErrNilState / ErrNilYbus for missing inputs.
//   - Unknown bus IDs wrap grid.ErrUnknownBus; a singular Y_LL wraps
//     cmat.ErrSingular.
//
// Complexity: O(|L|³ + |L|²·|G|) time, O(|L|² + |L|·|G|) memory.
package lindex
