package lindex

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/katalvlaran/voltmargin/cmat"
	"github.com/katalvlaran/voltmargin/grid"
)

// Compute evaluates the L-index of every load bus of a solved network.
// The partition defaults to G = slack + designated generators and
// L = all remaining buses; WithGeneratorBuses / WithLoadBuses override.
// Both sets must be non-empty before any numerical work starts.
func Compute(topo *grid.Topology, s *grid.SolvedState, opts ...Option) (*Result, error) {
	if topo == nil {
		return nil, ErrNilTopology
	}
	if s == nil {
		return nil, ErrNilState
	}
	if s.Ybus == nil {
		return nil, ErrNilYbus
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	gen, load := partition(topo, o)
	if len(gen) == 0 || len(load) == 0 {
		return nil, ErrEmptyPartition
	}

	gIdx, err := internalIndices(s, "generator", gen)
	if err != nil {
		return nil, err
	}
	lIdx, err := internalIndices(s, "load", load)
	if err != nil {
		return nil, err
	}

	// F = -Y_LL⁻¹ · Y_LG via one factorization and a multi-RHS solve
	yLL, err := s.Ybus.Submatrix(lIdx, lIdx)
	if err != nil {
		return nil, fmt.Errorf("lindex: Y_LL: %w", err)
	}
	yLG, err := s.Ybus.Submatrix(lIdx, gIdx)
	if err != nil {
		return nil, fmt.Errorf("lindex: Y_LG: %w", err)
	}
	fac, err := cmat.Factorize(yLL)
	if err != nil {
		return nil, fmt.Errorf("lindex: factorize Y_LL: %w", err)
	}
	sol, err := fac.Solve(yLG)
	if err != nil {
		return nil, fmt.Errorf("lindex: solve transfer matrix: %w", err)
	}
	f, err := cmat.Scale(-1, sol)
	if err != nil {
		return nil, fmt.Errorf("lindex: %w", err)
	}

	vg := make([]complex128, len(gen))
	for j, b := range gen {
		if vg[j], err = grid.ComplexVoltage(s, b); err != nil {
			return nil, fmt.Errorf("lindex: %w", err)
		}
	}

	res := &Result{ByBus: make(map[grid.BusID]float64, len(load))}
	first := true
	for row, b := range load {
		vi, err := grid.ComplexVoltage(s, b)
		if err != nil {
			return nil, fmt.Errorf("lindex: %w", err)
		}
		var li float64
		if cmplx.Abs(vi) < DegenerateVoltageTol {
			li = math.Inf(1)
		} else {
			var sum complex128
			for j := range gen {
				fv, _ := f.At(row, j)
				sum += fv * (vg[j] / vi)
			}
			li = cmplx.Abs(1 - sum)
		}
		res.ByBus[b] = li
		if first || li > res.Max {
			res.Max, res.CriticalBus = li, b
			first = false
		}
	}

	return res, nil
}

// partition resolves the generator and load bus sets from the options,
// falling back to the topology's slack + generators and their complement.
// The generator set is always ascending; an explicit load set keeps the
// caller's order, a derived one is ascending.
func partition(topo *grid.Topology, o Options) (gen, load []grid.BusID) {
	genSet := make(map[grid.BusID]struct{})
	if o.GeneratorBuses == nil {
		genSet[topo.Slack()] = struct{}{}
		for _, g := range topo.Generators() {
			genSet[g] = struct{}{}
		}
	} else {
		for _, g := range o.GeneratorBuses {
			genSet[g] = struct{}{}
		}
	}
	gen = make([]grid.BusID, 0, len(genSet))
	for g := range genSet {
		gen = append(gen, g)
	}
	sort.Slice(gen, func(i, j int) bool { return gen[i] < gen[j] })

	if o.LoadBuses == nil {
		for _, b := range topo.Buses() {
			if _, isGen := genSet[b]; !isGen {
				load = append(load, b)
			}
		}
	} else {
		seen := make(map[grid.BusID]struct{}, len(o.LoadBuses))
		load = make([]grid.BusID, 0, len(o.LoadBuses))
		for _, b := range o.LoadBuses {
			if _, dup := seen[b]; dup {
				continue
			}
			seen[b] = struct{}{}
			load = append(load, b)
		}
	}

	return gen, load
}

// internalIndices maps external bus IDs through the state's permutation.
func internalIndices(s *grid.SolvedState, role string, buses []grid.BusID) ([]int, error) {
	idx := make([]int, len(buses))
	for i, b := range buses {
		j, ok := s.Perm.Internal(b)
		if !ok {
			return nil, fmt.Errorf("lindex: %s bus %d not in permutation: %w", role, b, grid.ErrUnknownBus)
		}
		idx[i] = j
	}

	return idx, nil
}
