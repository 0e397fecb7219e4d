package sweep_test

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/gridtest"
	"github.com/katalvlaran/voltmargin/margin"
	"github.com/katalvlaran/voltmargin/sweep"
	"github.com/katalvlaran/voltmargin/zbus"
)

// run is a test helper sweeping the two-bus fixture.
func run(t *testing.T, mults []float64, opts ...sweep.Option) []sweep.Record {
	t.Helper()
	net := gridtest.TwoBus()
	recs, err := sweep.Run(context.Background(), net.Topo, gridtest.NewExactSolver(net), mults, opts...)
	require.NoError(t, err)
	require.Len(t, recs, len(mults))

	return recs
}

// TestRun_RecordsInMultiplierOrder checks every scenario lands at its
// own index, fully populated.
func TestRun_RecordsInMultiplierOrder(t *testing.T) {
	mults := []float64{1, 2, 3, 4}
	recs := run(t, mults)

	for i, rec := range recs {
		require.Equal(t, mults[i], rec.Multiplier)
		require.True(t, rec.Converged)
		require.NoError(t, rec.Err)
		require.NotNil(t, rec.Margins)
		require.Greater(t, rec.Injection, 0.0)
		require.False(t, math.IsNaN(rec.MinSV))
	}
}

// TestRun_DivergenceIsRecordedNotFatal checks a non-convergent scenario
// yields a marked record while its neighbours still compute.
func TestRun_DivergenceIsRecordedNotFatal(t *testing.T) {
	recs := run(t, []float64{1, 50, 2})

	require.True(t, recs[0].Converged)
	require.True(t, recs[2].Converged)

	require.False(t, recs[1].Converged)
	require.ErrorIs(t, recs[1].Err, gridtest.ErrDiverged)
	require.Nil(t, recs[1].Margins)
	require.True(t, math.IsNaN(recs[1].MinSV))
}

// TestRun_ParallelMatchesSequential checks worker dispatch changes
// nothing about the results.
func TestRun_ParallelMatchesSequential(t *testing.T) {
	mults := []float64{1, 2, 3, 5, 8, 13, 21, 50, 2.5, 4.5, 6.5, 10.5}
	seq := run(t, mults)
	par := run(t, mults, sweep.WithWorkers(4))

	for i := range seq {
		require.Equal(t, seq[i].Multiplier, par[i].Multiplier, "index %d", i)
		require.Equal(t, seq[i].Converged, par[i].Converged, "index %d", i)
		if !seq[i].Converged {
			continue
		}
		require.Equal(t, seq[i].Injection, par[i].Injection, "index %d", i)
		require.Equal(t, seq[i].LIndex, par[i].LIndex, "index %d", i)
		require.Equal(t, seq[i].Branch, par[i].Branch, "index %d", i)
		require.Equal(t, seq[i].Path, par[i].Path, "index %d", i)
		require.Equal(t, seq[i].MinSV, par[i].MinSV, "index %d", i)
		require.Equal(t, seq[i].CriticalInjection, par[i].CriticalInjection, "index %d", i)
	}
}

// TestRun_MinSVShrinksTowardCollapse checks the Jacobian's smallest
// singular value tracks the approach to the nose point.
func TestRun_MinSVShrinksTowardCollapse(t *testing.T) {
	net := gridtest.TwoBus()
	lam, err := net.CollapseMultiplier()
	require.NoError(t, err)

	recs := run(t, []float64{1, 0.5 * lam, 0.9 * lam, 0.9999 * lam})
	for i := 1; i < len(recs); i++ {
		require.Less(t, recs[i].MinSV, recs[i-1].MinSV, "index %d", i)
	}
	require.Less(t, recs[len(recs)-1].MinSV, 0.1)
}

// TestRun_MarginOptionsForwarded checks engine options ride along into
// every scenario.
func TestRun_MarginOptionsForwarded(t *testing.T) {
	recs := run(t, []float64{1}, sweep.WithMarginOptions(margin.WithPathDiagnostics()))

	require.NotNil(t, recs[0].Margins.PathDiagnostics)
	require.Contains(t, recs[0].Margins.PathDiagnostics, grid.BusID(1))
}

// brokenSolver returns a fixed snapshot regardless of multiplier.
type brokenSolver struct {
	state *grid.SolvedState
}

func (b brokenSolver) Solve(*grid.Topology, float64) (*grid.SolvedState, error) {
	return b.state, nil
}

// TestRun_EngineErrorIsFatal checks a margin-engine failure aborts the
// sweep instead of masquerading as divergence.
func TestRun_EngineErrorIsFatal(t *testing.T) {
	net := gridtest.TwoBus()
	state, err := gridtest.NewExactSolver(net).Solve(net.Topo, 1)
	require.NoError(t, err)

	noY := *state
	noY.Ybus = nil

	_, err = sweep.Run(context.Background(), net.Topo, brokenSolver{state: &noY}, []float64{1})
	require.ErrorIs(t, err, zbus.ErrNilMatrix)
}

// TestRun_Validation walks the argument errors.
func TestRun_Validation(t *testing.T) {
	net := gridtest.TwoBus()
	solver := gridtest.NewExactSolver(net)
	ctx := context.Background()

	_, err := sweep.Run(ctx, nil, solver, []float64{1})
	require.ErrorIs(t, err, grid.ErrNilTopology)

	_, err = sweep.Run(ctx, net.Topo, nil, []float64{1})
	require.ErrorIs(t, err, sweep.ErrNilSolver)

	_, err = sweep.Run(ctx, net.Topo, solver, nil)
	require.ErrorIs(t, err, sweep.ErrNoMultipliers)

	_, err = sweep.Run(ctx, net.Topo, solver, []float64{1}, sweep.WithWorkers(0))
	require.ErrorIs(t, err, sweep.ErrBadWorkers)
}

// TestRun_CancelledContext checks a dead context stops the sweep.
func TestRun_CancelledContext(t *testing.T) {
	net := gridtest.TwoBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sweep.Run(ctx, net.Topo, gridtest.NewExactSolver(net), []float64{1, 2, 3})
	require.ErrorIs(t, err, context.Canceled)
}

// TestWriteTable checks row rendering for convergent and failed
// scenarios.
func TestWriteTable(t *testing.T) {
	recs := run(t, []float64{1, 50})

	var buf bytes.Buffer
	require.NoError(t, sweep.WriteTable(&buf, recs))

	out := buf.String()
	require.Contains(t, out, "MULT")
	require.Contains(t, out, "MIN-SV")
	require.Contains(t, out, "ok")
	require.Contains(t, out, "diverged")
	require.Contains(t, out, "@ 0->1")
	require.Contains(t, out, "@ 1")
}

// TestSaveChart checks a figure file lands on disk.
func TestSaveChart(t *testing.T) {
	recs := run(t, []float64{1, 2, 4, 8, 16, 50})

	path := filepath.Join(t.TempDir(), "margins.svg")
	require.NoError(t, sweep.SaveChart(path, recs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "<svg")
}
