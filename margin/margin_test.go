package margin_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/gridtest"
	"github.com/katalvlaran/voltmargin/lindex"
	"github.com/katalvlaran/voltmargin/margin"
)

// solve is a test helper that runs a fixture network's solver.
func solve(t *testing.T, net gridtest.Network, mult float64) *grid.SolvedState {
	t.Helper()
	state, err := gridtest.NewExactSolver(net).Solve(net.Topo, mult)
	require.NoError(t, err)

	return state
}

// TestCompute_HealthyBaseCase checks the sign conventions at base load:
// positive injection and determinant margins, L-index below 1, sentinel
// only at the slack.
func TestCompute_HealthyBaseCase(t *testing.T) {
	net := gridtest.TwoBus()
	res, err := margin.Compute(net.Topo, solve(t, net, 1))
	require.NoError(t, err)

	require.Len(t, res.Injection, 1)
	require.Greater(t, res.Injection[1], 0.0)

	require.Len(t, res.LIndex, 1)
	require.Greater(t, res.LIndex[1], 0.0)
	require.Less(t, res.LIndex[1], 1.0)

	require.Len(t, res.Branch, 2)
	for dir, m := range res.Branch {
		require.Greater(t, m, 0.0, "branch %v", dir)
	}

	require.Len(t, res.Path, 2)
	require.Equal(t, margin.Undefined, res.Path[0])
	require.Greater(t, res.Path[1], 0.0)
	require.Less(t, res.Path[1], 1.0)

	require.Nil(t, res.PathDiagnostics)
}

// TestCompute_MarginsVanishAtCollapse drives the two-bus network to just
// below its loadability limit and checks every family reads nearly
// critical: determinant margins near zero, injection margin near zero,
// L-index near 1.
func TestCompute_MarginsVanishAtCollapse(t *testing.T) {
	net := gridtest.TwoBus()
	lam, err := net.CollapseMultiplier()
	require.NoError(t, err)

	res, err := margin.Compute(net.Topo, solve(t, net, (1-1e-4)*lam))
	require.NoError(t, err)

	require.Greater(t, res.Injection[1], 0.0)
	require.Less(t, res.Injection[1], 0.05)

	require.Greater(t, res.LIndex[1], 0.97)
	require.Less(t, res.LIndex[1], 1.0)

	fwd := res.Branch[margin.LineDirection{Sending: 0, Receiving: 1}]
	require.Greater(t, fwd, 0.0)
	require.Less(t, fwd, 1e-3)

	require.Greater(t, res.Path[1], 0.0)
	require.Less(t, res.Path[1], 1e-3)
}

// TestCompute_InjectionMarginShrinksWithLoad checks the monotone sweep
// property on a radial feeder: more load, less margin.
func TestCompute_InjectionMarginShrinksWithLoad(t *testing.T) {
	net := gridtest.TwoBus()

	prev := math.Inf(1)
	for _, mult := range []float64{1, 2, 4, 8, 16} {
		res, err := margin.Compute(net.Topo, solve(t, net, mult))
		require.NoError(t, err)
		require.Less(t, res.Injection[1], prev, "multiplier %v", mult)
		prev = res.Injection[1]
	}
}

// TestCompute_CriticalKeysPointAtWeakestLeg checks all four families
// agree on the longest star spoke.
func TestCompute_CriticalKeysPointAtWeakestLeg(t *testing.T) {
	net := gridtest.Star(3)
	res, err := margin.Compute(net.Topo, solve(t, net, 5))
	require.NoError(t, err)

	require.Equal(t, grid.BusID(3), res.CriticalInjection)
	require.Equal(t, grid.BusID(3), res.CriticalLIndex)
	require.Equal(t, grid.BusID(3), res.CriticalPath)
	require.Equal(t, margin.LineDirection{Sending: 0, Receiving: 3}, res.CriticalBranch)
}

// TestBranchMargins_TwoEntriesPerLine checks both orientations of every
// line are independently keyed.
func TestBranchMargins_TwoEntriesPerLine(t *testing.T) {
	net := gridtest.Star(2)
	br, err := margin.BranchMargins(net.Topo, solve(t, net, 1))
	require.NoError(t, err)

	require.Len(t, br, 4)
	for _, dir := range []margin.LineDirection{
		{Sending: 0, Receiving: 1}, {Sending: 1, Receiving: 0},
		{Sending: 0, Receiving: 2}, {Sending: 2, Receiving: 0},
	} {
		require.Contains(t, br, dir)
	}
}

// TestCompute_LIndexExcludesGenerators checks the slack never appears in
// the L-index mapping.
func TestCompute_LIndexExcludesGenerators(t *testing.T) {
	net := gridtest.Star(3)
	res, err := margin.Compute(net.Topo, solve(t, net, 1))
	require.NoError(t, err)

	_, ok := res.LIndex[net.Topo.Slack()]
	require.False(t, ok)
	require.Len(t, res.LIndex, 3)
}

// TestCompute_LIndexOptionsForwarded checks partition overrides reach the
// L-index engine.
func TestCompute_LIndexOptionsForwarded(t *testing.T) {
	net := gridtest.Star(2)
	res, err := margin.Compute(net.Topo, solve(t, net, 1),
		margin.WithLIndexOptions(lindex.WithLoadBuses(1)))
	require.NoError(t, err)

	require.Len(t, res.LIndex, 1)
	require.Contains(t, res.LIndex, grid.BusID(1))
	require.Equal(t, grid.BusID(1), res.CriticalLIndex)
}

// TestCompute_PathDiagnosticsOptIn checks the sensitivity chain appears
// only on request, starts at 1, and decays below 1 under load.
func TestCompute_PathDiagnosticsOptIn(t *testing.T) {
	net := gridtest.TwoBus()
	state := solve(t, net, 1)

	res, err := margin.Compute(net.Topo, state, margin.WithPathDiagnostics())
	require.NoError(t, err)

	require.Len(t, res.PathDiagnostics, 1)
	diag, ok := res.PathDiagnostics[1]
	require.True(t, ok)
	require.Equal(t, []grid.BusID{1, 0}, diag.Path)
	require.Len(t, diag.Sensitivities, 2)
	require.Equal(t, 1.0, diag.Sensitivities[0])
	require.Greater(t, diag.Sensitivities[1], 0.99)
	require.Less(t, diag.Sensitivities[1], 1.0)

	_, ok = res.PathDiagnostics[0]
	require.False(t, ok, "sentinel buses carry no diagnostic")
}

// TestPathMargin_SlackIsSentinel pins the slack bus's own path margin.
func TestPathMargin_SlackIsSentinel(t *testing.T) {
	net := gridtest.TwoBus()
	m, err := margin.PathMargin(net.Topo, solve(t, net, 1), 0)
	require.NoError(t, err)

	require.Equal(t, margin.Undefined, m)
}

// TestPathMargin_DisconnectedIsSentinel checks a bus with no route to
// the slack degrades to the sentinel instead of failing.
func TestPathMargin_DisconnectedIsSentinel(t *testing.T) {
	topo, err := grid.NewTopology(grid.TopologySpec{
		Buses: []grid.BusID{0, 1, 2},
		Lines: []grid.Line{
			{From: 0, To: 1, ROhmPerKm: gridtest.ROhmPerKm, XOhmPerKm: gridtest.XOhmPerKm, LengthKm: 1},
		},
		Slack: 0,
		VnKV:  map[grid.BusID]float64{0: gridtest.VnKV, 1: gridtest.VnKV, 2: gridtest.VnKV},
	})
	require.NoError(t, err)
	perm, err := grid.NewPermutation(topo.Buses())
	require.NoError(t, err)
	state := &grid.SolvedState{
		VmPU:    map[grid.BusID]float64{0: 1, 1: 1, 2: 1},
		VaDeg:   map[grid.BusID]float64{0: 0, 1: 0, 2: 0},
		BaseMVA: gridtest.BaseMVA,
		Perm:    perm,
	}

	m, err := margin.PathMargin(topo, state, 2)
	require.NoError(t, err)
	require.Equal(t, margin.Undefined, m)
}

// TestPathMargin_UnknownBusRejected distinguishes a bus outside the
// topology from a disconnected one.
func TestPathMargin_UnknownBusRejected(t *testing.T) {
	net := gridtest.TwoBus()
	_, err := margin.PathMargin(net.Topo, solve(t, net, 1), 99)

	require.ErrorIs(t, err, grid.ErrUnknownBus)
}

// TestPathMargin_MissingFlowIsFatal checks a half-populated snapshot
// fails loudly instead of walking on zeros.
func TestPathMargin_MissingFlowIsFatal(t *testing.T) {
	net := gridtest.TwoBus()
	state := solve(t, net, 1)

	bare := *state
	bare.LineFlows = map[int]grid.LineFlow{}

	_, err := margin.PathMargin(net.Topo, &bare, 1)
	require.ErrorIs(t, err, grid.ErrMissingLineFlow)
}

// TestInjectionMargins_DegenerateVoltagePropagates checks a zero-voltage
// bus poisons its margin with -Inf rather than a clamped number.
func TestInjectionMargins_DegenerateVoltagePropagates(t *testing.T) {
	net := gridtest.TwoBus()
	state := solve(t, net, 1)

	dead := *state
	dead.VmPU = map[grid.BusID]float64{0: 1, 1: 0}

	inj, err := margin.InjectionMargins(net.Topo, &dead)
	require.NoError(t, err)
	require.True(t, math.IsInf(inj[1], -1))
}

// TestCompute_NilArguments covers the validation front door.
func TestCompute_NilArguments(t *testing.T) {
	net := gridtest.TwoBus()
	state := solve(t, net, 1)

	_, err := margin.Compute(nil, state)
	require.ErrorIs(t, err, grid.ErrNilTopology)

	_, err = margin.Compute(net.Topo, nil)
	require.ErrorIs(t, err, grid.ErrNilState)
}

// TestFamily_Directions pins the documented sense of each family.
func TestFamily_Directions(t *testing.T) {
	require.Equal(t, margin.LowerIsWorse, margin.FamilyInjection.Direction())
	require.Equal(t, margin.HigherIsWorse, margin.FamilyLIndex.Direction())
	require.Equal(t, margin.LowerIsWorse, margin.FamilyBranch.Direction())
	require.Equal(t, margin.LowerIsWorse, margin.FamilyPath.Direction())
	require.Equal(t, "l-index", margin.FamilyLIndex.String())
	require.Equal(t, "higher-is-worse", margin.HigherIsWorse.String())
}
