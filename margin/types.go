package margin

import (
	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/lindex"
)

// Undefined is the sentinel recorded for path margins that cannot be
// computed: the slack bus itself and buses with no path to the slack.
const Undefined = 999.0

// Direction tells which way a margin family gets worse.
type Direction int

const (
	// LowerIsWorse marks families where smaller (or negative) values are
	// closer to collapse.
	LowerIsWorse Direction = iota
	// HigherIsWorse marks the L-index, which grows toward 1 at collapse.
	HigherIsWorse
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == HigherIsWorse {
		return "higher-is-worse"
	}

	return "lower-is-worse"
}

// Family identifies one of the four margin families.
type Family int

const (
	FamilyInjection Family = iota
	FamilyLIndex
	FamilyBranch
	FamilyPath
)

// Direction returns the family's sense of badness.
func (f Family) Direction() Direction {
	if f == FamilyLIndex {
		return HigherIsWorse
	}

	return LowerIsWorse
}

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case FamilyInjection:
		return "injection"
	case FamilyLIndex:
		return "l-index"
	case FamilyBranch:
		return "branch"
	case FamilyPath:
		return "path"
	default:
		return "unknown"
	}
}

// LineDirection keys the single-branch margin: one physical line yields
// two entries, one per orientation.
type LineDirection struct {
	Sending, Receiving grid.BusID
}

// PathDiagnostic is the optional per-bus byproduct of the path walk: the
// walked path and the voltage-sensitivity chain along it. The chain
// starts at 1 and multiplies by (1 − z²s²/v_send⁴) per hop; it does not
// feed the scalar margin.
type PathDiagnostic struct {
	Path          []grid.BusID
	Sensitivities []float64
}

// Result carries the four margin mappings of one snapshot, each with its
// extremal key per the family Direction. PathDiagnostics is nil unless
// requested and never holds entries for sentinel buses.
type Result struct {
	Injection map[grid.BusID]float64
	LIndex    map[grid.BusID]float64
	Branch    map[LineDirection]float64
	Path      map[grid.BusID]float64

	CriticalInjection grid.BusID
	CriticalLIndex    grid.BusID
	CriticalBranch    LineDirection
	CriticalPath      grid.BusID

	PathDiagnostics map[grid.BusID]PathDiagnostic
}

// Options configures Compute.
//
// PathDiagnostics – record the walked path and sensitivity chain per
// bus. LIndex – options forwarded to the L-index engine.
type Options struct {
	PathDiagnostics bool
	LIndex          []lindex.Option
}

// Option is a functional option for Compute.
type Option func(*Options)

// WithPathDiagnostics turns on recording of path walks.
func WithPathDiagnostics() Option {
	return func(o *Options) {
		o.PathDiagnostics = true
	}
}

// WithLIndexOptions forwards partition overrides to the L-index engine.
func WithLIndexOptions(opts ...lindex.Option) Option {
	return func(o *Options) {
		o.LIndex = opts
	}
}

// DefaultOptions returns the zero configuration: no diagnostics, default
// L-index partition.
func DefaultOptions() Options {
	return Options{}
}
