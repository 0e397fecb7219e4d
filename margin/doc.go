// Package margin derives four independent voltage-stability indicators
// from one solved power-flow snapshot and names the most critical bus or
// branch of each.
//
// What
//
//	Compute runs all four families over a topology plus solved state:
//
//	  • Injection margin, per non-slack bus: |V_h| − Σ|Z_hk·I_k| over the
//	    slack-reduced impedance matrix. Lower is worse.
//	  • L-index, per load bus, delegated to package lindex. Higher is
//	    worse; the inverted sense is kept, not renormalized.
//	  • Single-branch determinant margin, one entry per line per
//	    direction: (v_send² − 2(r·p + x·q))². Lower is worse.
//	  • Path-accumulated determinant margin, per bus along its shortest
//	    path to the slack. Lower is worse. The slack itself and any bus
//	    the slack cannot reach map to the Undefined sentinel.
//
//	Each family also reports its extremal key, chosen by the family's
//	Direction with ties broken toward the smaller key.
//
// Sense of the numbers
//
//	Positive determinant margins mean the quadratic voltage-power
//	relation still has a real solution; they shrink toward zero as the
//	operating point approaches collapse. Degenerate voltages propagate
//	as Inf/NaN rather than being clamped; infinities rank as maximally
//	critical in the extremal scans.
//
// Errors
//
//	A missing branch, a singular reduction, and an empty L-index
//	partition are fatal to the computation and surface wrapped. An
//	unreachable path is not an error; it yields the sentinel.
//
// Determinism
//
//	Pure functions of their inputs. Map iteration never decides a
//	result: extremal scans run over sorted keys.
package margin
