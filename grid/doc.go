// Package grid defines the static network model and the solved-state
// snapshot that every voltage-stability indicator consumes.
//
// What
//
//   - Topology: immutable bus/line/slack description with per-bus base
//     voltages, a two-orientation line lookup table, and an adjacency
//     index. Built once, shared read-only across scenarios.
//   - SolvedState: one converged power-flow snapshot (voltages, net
//     injections, line flows, admittance matrix, Jacobian) together with
//     the Permutation between external bus IDs and solver-internal indices.
//   - Per-unit helpers: complex bus voltages, injection currents, line
//     series impedance in per-unit.
//   - BranchVariables: the directed per-branch electrical quantities
//     (impedance, squared voltages, outgoing flow, loss ratios) shared by
//     the determinant margins.
//
// Conventions
//
//	Voltage angles arrive in degrees and are converted to radians here.
//	Per-unit impedance bases use the sending bus's voltage zone:
//	Zbase = Vn²/Sbase with Vn in kV and Sbase in MVA.
//	A branch lookup is directional: (sending, receiving) matches a line in
//	either orientation, and the matched orientation selects which end's
//	flow quantities are reported.
//
// Errors
//
//	All failures are package-level sentinels (ErrNoBuses, ErrUnknownBus,
//	ErrDuplicateBus, ErrBadLine, ErrBadBaseVoltage, ErrNoSuchBranch,
//	ErrMissingBusValue, ...) matched with errors.Is; callers get wrapped
//	context via fmt.Errorf("...: %w", err).
package grid
