package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/margin"
)

// ErrSVDFailed indicates the Jacobian's singular value decomposition did
// not converge.
var ErrSVDFailed = errors.New("sweep: jacobian svd did not converge")

// Run sweeps the load multipliers in order and returns one Record each.
// A solver error marks its scenario non-convergent and the sweep goes
// on; a margin-engine error cancels the remaining scenarios and is
// returned. Records are always in multiplier order.
func Run(ctx context.Context, topo *grid.Topology, solver Solver, mults []float64, opts ...Option) ([]Record, error) {
	if topo == nil {
		return nil, grid.ErrNilTopology
	}
	if solver == nil {
		return nil, ErrNilSolver
	}
	if len(mults) == 0 {
		return nil, ErrNoMultipliers
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers < 1 {
		return nil, fmt.Errorf("sweep: %d workers: %w", o.Workers, ErrBadWorkers)
	}

	records := make([]Record, len(mults))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i, mult := range mults {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := runScenario(topo, solver, mult, o.Margin)
			if err != nil {
				return err
			}
			records[i] = rec

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// runScenario solves and evaluates one multiplier.
func runScenario(topo *grid.Topology, solver Solver, mult float64, mopts []margin.Option) (Record, error) {
	state, err := solver.Solve(topo, mult)
	if err != nil {
		return divergedRecord(mult, err), nil
	}

	res, err := margin.Compute(topo, state, mopts...)
	if err != nil {
		return Record{}, fmt.Errorf("sweep: multiplier %v: %w", mult, err)
	}

	rec := Record{
		Multiplier: mult,
		Converged:  true,
		MinSV:      math.NaN(),
		Margins:    res,

		Injection: res.Injection[res.CriticalInjection],
		LIndex:    res.LIndex[res.CriticalLIndex],
		Branch:    res.Branch[res.CriticalBranch],
		Path:      res.Path[res.CriticalPath],

		CriticalInjection: res.CriticalInjection,
		CriticalLIndex:    res.CriticalLIndex,
		CriticalBranch:    res.CriticalBranch,
		CriticalPath:      res.CriticalPath,
	}
	if state.Jacobian != nil {
		if rec.MinSV, err = minSingularValue(state.Jacobian); err != nil {
			return Record{}, fmt.Errorf("sweep: multiplier %v: %w", mult, err)
		}
	}

	return rec, nil
}

// minSingularValue returns the smallest singular value of a real matrix.
func minSingularValue(m *mat.Dense) (float64, error) {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return 0, ErrSVDFailed
	}
	vals := svd.Values(nil)

	return vals[len(vals)-1], nil
}
