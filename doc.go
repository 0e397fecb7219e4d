// Package voltmargin turns one solved power-flow snapshot into a
// voltage-stability verdict: four independent margins per bus and
// branch, the most critical location of each, and sweep tooling that
// tracks them all the way into voltage collapse.
//
// 🚀 What is voltmargin?
//
//	A static, per-snapshot diagnostic engine that brings together:
//		• Per-unit plumbing: complex bus voltages, injection currents, branch variables
//		• Z-bus reduction: slack-eliminated impedance sensitivities
//		• Kessel–Glavitsch L-index per load bus
//		• Determinant margins: per branch (both directions) and accumulated
//		  along each bus's shortest path to the slack
//		• Sweep driver: parallel load-multiplier scans with tables and charts
//
// ✨ Why voltmargin?
//
//   - Explicit error taxonomy – singular reductions, missing branches and
//     degenerate voltages each surface as their own sentinel
//   - Deterministic – sorted scans everywhere; map order never decides
//     a critical bus
//   - Honest numbers – infinities and sentinels propagate instead of
//     being clamped away
//
// Everything is organized under focused subpackages:
//
//	cmat/     — complex dense/sparse matrices, LU solve & inverse
//	grid/     — topology, solved snapshots, per-unit & branch extraction
//	gridpath/ — shortest-path and leaf queries over the bus graph
//	zbus/     — slack-bus elimination and impedance-matrix inversion
//	lindex/   — the L-index engine
//	margin/   — the four margin families and their critical keys
//	sweep/    — multi-scenario driver, text tables, charts
//	gridtest/ — closed-form solvable fixture networks for tests & demos
//
// Quick ASCII picture of the bundled fixtures:
//
//	twobus:  0───1        star:   1───0───2      chain:  0───1───2───3
//	                                   │
//	                                   3
//
//	bus 0 is always the slack; loads sit at the far ends.
//
// Dive into cmd/voltmargin for a runnable sweep over all fixtures.
//
//	go get github.com/katalvlaran/voltmargin
package voltmargin
