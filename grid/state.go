package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/voltmargin/cmat"
)

// LineFlow carries the solved power flow at both ends of one line.
// From-end values are the flow leaving the line's From bus into the line;
// to-end values are the flow leaving the To bus into the line. The two
// ends differ by the line losses.
type LineFlow struct {
	PFromMW   float64
	QFromMvar float64
	PToMW     float64
	QToMvar   float64
}

// Permutation maps between external bus IDs and the solver-internal
// contiguous indexing used by the admittance matrix and its reductions.
// The zero value is unusable; build one with NewPermutation.
type Permutation struct {
	toInternal map[BusID]int
	toExternal []BusID
}

// NewPermutation builds the mapping from the solver's internal bus order:
// order[i] is the external ID of internal index i.
// Duplicate IDs yield ErrDuplicateBus.
func NewPermutation(order []BusID) (Permutation, error) {
	toInternal := make(map[BusID]int, len(order))
	toExternal := make([]BusID, len(order))
	for i, b := range order {
		if _, dup := toInternal[b]; dup {
			return Permutation{}, fmt.Errorf("grid: permutation bus %d: %w", b, ErrDuplicateBus)
		}
		toInternal[b] = i
		toExternal[i] = b
	}

	return Permutation{toInternal: toInternal, toExternal: toExternal}, nil
}

// N returns the number of buses the permutation covers.
func (p Permutation) N() int { return len(p.toExternal) }

// Internal returns the solver-internal index of bus b.
func (p Permutation) Internal(b BusID) (int, bool) {
	i, ok := p.toInternal[b]

	return i, ok
}

// External returns the external bus ID at internal index i.
func (p Permutation) External(i int) (BusID, bool) {
	if i < 0 || i >= len(p.toExternal) {
		return 0, false
	}

	return p.toExternal[i], true
}

// ExternalOrder returns the external IDs in internal order. The slice is
// a copy.
func (p Permutation) ExternalOrder() []BusID {
	out := make([]BusID, len(p.toExternal))
	copy(out, p.toExternal)

	return out
}

// SolvedState is one converged power-flow snapshot. It is produced by an
// external solver, read by every indicator, and never mutated after
// construction. All per-bus maps are keyed by external BusID; Ybus and
// Jacobian use the solver-internal order described by Perm.
//
// PMW/QMvar follow the solver's reporting convention (consumption
// positive); the indicators consume only magnitudes, so the convention is
// recorded rather than enforced.
type SolvedState struct {
	VmPU      map[BusID]float64
	VaDeg     map[BusID]float64
	PMW       map[BusID]float64
	QMvar     map[BusID]float64
	LineFlows map[int]LineFlow
	BaseMVA   float64
	Ybus      *cmat.Sparse
	Jacobian  *mat.Dense
	Perm      Permutation
}

// Validate checks the snapshot's internal consistency against topo:
// positive base power, a voltage entry for every bus, a permutation
// covering exactly the topology's buses, and a square Ybus of matching
// order when present. Injection maps may be sparse (an absent entry means
// zero net injection); flow maps are checked per line by their consumers.
func (s *SolvedState) Validate(topo *Topology) error {
	if s == nil {
		return ErrNilState
	}
	if topo == nil {
		return ErrNilTopology
	}
	if s.BaseMVA <= 0 {
		return fmt.Errorf("grid: base %v MVA: %w", s.BaseMVA, ErrBadBaseMVA)
	}
	for _, b := range topo.buses {
		if _, ok := s.VmPU[b]; !ok {
			return fmt.Errorf("grid: vm of bus %d: %w", b, ErrMissingBusValue)
		}
		if _, ok := s.VaDeg[b]; !ok {
			return fmt.Errorf("grid: va of bus %d: %w", b, ErrMissingBusValue)
		}
	}
	if s.Perm.N() != topo.NumBuses() {
		return fmt.Errorf("grid: permutation covers %d of %d buses: %w",
			s.Perm.N(), topo.NumBuses(), ErrPermutationMismatch)
	}
	for _, b := range topo.buses {
		if _, ok := s.Perm.Internal(b); !ok {
			return fmt.Errorf("grid: bus %d not in permutation: %w", b, ErrPermutationMismatch)
		}
	}
	if s.Ybus != nil {
		n := topo.NumBuses()
		if s.Ybus.Rows() != n || s.Ybus.Cols() != n {
			return fmt.Errorf("grid: ybus %dx%d for %d buses: %w",
				s.Ybus.Rows(), s.Ybus.Cols(), n, ErrPermutationMismatch)
		}
	}

	return nil
}

// Flow returns the solved flow of line idx, or ErrMissingLineFlow.
func (s *SolvedState) Flow(idx int) (LineFlow, error) {
	f, ok := s.LineFlows[idx]
	if !ok {
		return LineFlow{}, fmt.Errorf("grid: line %d: %w", idx, ErrMissingLineFlow)
	}

	return f, nil
}
