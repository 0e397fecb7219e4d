// Package gridtest supplies small analytic networks and an exact solver
// for them, so indicator tests and demos can run against snapshots whose
// every value has a closed form.
//
// Networks
//
//   - TwoBus:   slack 0 — load 1 over a single line.
//   - Star(n):  slack hub 0 with n leaf load buses, leg lengths growing
//     with the leaf index so each leg collapses at a different multiplier.
//   - Chain(n): slack 0 — 1 — ... — n with the only load at the tail,
//     giving multi-hop paths.
//
// All networks share one 20 kV voltage zone and a 100 MVA system base;
// every load bus draws 10 MW + 5 Mvar at multiplier 1.
//
// Exact solving
//
//	Each load is fed over its own radial path, so the receiving-end
//	voltage satisfies the single-feed quadratic
//
//	    t² + (2(R·P + X·Q) − v₁²)·t + Z²·S² = 0,   t = |V_recv|²
//
//	whose larger root gives the stable operating point, and the full
//	complex profile follows as V = v₁·t / (t + Z·conj(S)). There is no
//	iteration anywhere; ExactSolver errors with ErrDiverged once the
//	discriminant goes negative (past the collapse point), which a sweep
//	records as that scenario's divergence.
//
//	CollapseMultiplier returns the smallest load multiplier at which any
//	feed's discriminant reaches zero: λ* = v₁² / (2·(d + Z·S₀)) per feed
//	with d = R·P₀ + X·Q₀.
//
// The solver also assembles the bus admittance matrix and the polar
// power-flow Jacobian evaluated at the solved point, so a snapshot is
// complete for every indicator including the minimum-singular-value
// diagnostic.
package gridtest
