package margin

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/lindex"
)

// Compute runs all four margin families over one solved snapshot and
// selects each family's most critical key. Unreachable paths degrade to
// the Undefined sentinel; every other failure aborts the whole
// computation.
func Compute(topo *grid.Topology, s *grid.SolvedState, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := s.Validate(topo); err != nil {
		return nil, fmt.Errorf("margin: %w", err)
	}

	inj, err := InjectionMargins(topo, s)
	if err != nil {
		return nil, err
	}
	li, err := lindex.Compute(topo, s, o.LIndex...)
	if err != nil {
		return nil, fmt.Errorf("margin: %w", err)
	}
	br, err := BranchMargins(topo, s)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Injection: inj,
		LIndex:    li.ByBus,
		Branch:    br,
		Path:      make(map[grid.BusID]float64, topo.NumBuses()),
	}
	if o.PathDiagnostics {
		res.PathDiagnostics = make(map[grid.BusID]PathDiagnostic, topo.NumBuses())
	}
	for _, b := range topo.Buses() {
		m, diag, err := pathWalk(topo, s, b, o.PathDiagnostics)
		if err != nil {
			return nil, err
		}
		res.Path[b] = m
		if o.PathDiagnostics && len(diag.Path) > 0 {
			res.PathDiagnostics[b] = diag
		}
	}

	res.CriticalInjection = criticalBus(res.Injection, FamilyInjection.Direction())
	res.CriticalLIndex = li.CriticalBus
	res.CriticalBranch = criticalLine(res.Branch)
	res.CriticalPath = criticalBus(res.Path, FamilyPath.Direction())

	return res, nil
}

// criticalBus scans a bus-keyed mapping in ascending bus order and keeps
// the extremal entry per the direction, first key winning ties.
func criticalBus(m map[grid.BusID]float64, dir Direction) grid.BusID {
	buses := make([]grid.BusID, 0, len(m))
	for b := range m {
		buses = append(buses, b)
	}
	sort.Slice(buses, func(i, j int) bool { return buses[i] < buses[j] })

	var crit grid.BusID
	first := true
	for _, b := range buses {
		if first || worse(m[b], m[crit], dir) {
			crit = b
			first = false
		}
	}

	return crit
}

// criticalLine scans the branch mapping in (sending, receiving) order and
// keeps the smallest margin, first key winning ties.
func criticalLine(m map[LineDirection]float64) LineDirection {
	dirs := make([]LineDirection, 0, len(m))
	for d := range m {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		if dirs[i].Sending != dirs[j].Sending {
			return dirs[i].Sending < dirs[j].Sending
		}

		return dirs[i].Receiving < dirs[j].Receiving
	})

	var crit LineDirection
	first := true
	for _, d := range dirs {
		if first || worse(m[d], m[crit], LowerIsWorse) {
			crit = d
			first = false
		}
	}

	return crit
}

// worse reports whether a is strictly more critical than b.
func worse(a, b float64, dir Direction) bool {
	if dir == HigherIsWorse {
		return a > b
	}

	return a < b
}
