package sweep

import (
	"errors"
	"math"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/margin"
)

var (
	// ErrNilSolver indicates Run was given no solver.
	ErrNilSolver = errors.New("sweep: solver is nil")
	// ErrNoMultipliers indicates an empty scenario list.
	ErrNoMultipliers = errors.New("sweep: no load multipliers")
	// ErrBadWorkers indicates a non-positive worker count.
	ErrBadWorkers = errors.New("sweep: worker count must be positive")
)

// Solver produces one solved snapshot per load multiplier. A solve that
// cannot converge returns an error; the sweep records it and moves on.
type Solver interface {
	Solve(topo *grid.Topology, loadMult float64) (*grid.SolvedState, error)
}

// Record is the outcome of one scenario. For a convergent solve it holds
// the worst value and critical key of each margin family, the minimum
// singular value of the Jacobian (NaN when the snapshot carries none),
// and the full per-key detail. For a failed solve only Multiplier,
// Converged and Err are meaningful.
type Record struct {
	Multiplier float64
	Converged  bool
	Err        error

	MinSV float64

	Injection float64
	LIndex    float64
	Branch    float64
	Path      float64

	CriticalInjection grid.BusID
	CriticalLIndex    grid.BusID
	CriticalBranch    margin.LineDirection
	CriticalPath      grid.BusID

	Margins *margin.Result
}

// divergedRecord marks one scenario as failed.
func divergedRecord(mult float64, err error) Record {
	return Record{Multiplier: mult, Err: err, MinSV: math.NaN()}
}

// Options configures Run.
//
// Workers – concurrent scenario limit, 1 means sequential.
// Margin – options forwarded to every margin computation.
type Options struct {
	Workers int
	Margin  []margin.Option
}

// Option is a functional option for Run.
type Option func(*Options)

// WithWorkers bounds scenario concurrency.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithMarginOptions forwards options to the margin engine.
func WithMarginOptions(opts ...margin.Option) Option {
	return func(o *Options) {
		o.Margin = opts
	}
}

// DefaultOptions returns the sequential configuration.
func DefaultOptions() Options {
	return Options{Workers: 1}
}
