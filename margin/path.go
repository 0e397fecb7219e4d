package margin

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/gridpath"
)

// PathMargin computes the path-accumulated determinant margin of one bus
// relative to the slack. The slack itself and a bus the slack cannot
// reach yield the Undefined sentinel, not an error.
func PathMargin(topo *grid.Topology, s *grid.SolvedState, bus grid.BusID) (float64, error) {
	if err := s.Validate(topo); err != nil {
		return 0, fmt.Errorf("margin: path: %w", err)
	}
	m, _, err := pathWalk(topo, s, bus, false)

	return m, err
}

// PathMarginDiagnostic is PathMargin plus the walked path and the
// voltage-sensitivity chain. Sentinel buses return a zero diagnostic.
func PathMarginDiagnostic(topo *grid.Topology, s *grid.SolvedState, bus grid.BusID) (float64, PathDiagnostic, error) {
	if err := s.Validate(topo); err != nil {
		return 0, PathDiagnostic{}, fmt.Errorf("margin: path: %w", err)
	}

	return pathWalk(topo, s, bus, true)
}

// pathWalk runs the edge-by-edge accumulation. Callers validate the
// state; this only resolves the path and walks it.
func pathWalk(topo *grid.Topology, s *grid.SolvedState, bus grid.BusID, wantDiag bool) (float64, PathDiagnostic, error) {
	if !topo.HasBus(bus) {
		return 0, PathDiagnostic{}, fmt.Errorf("margin: path: bus %d: %w", bus, grid.ErrUnknownBus)
	}
	slack := topo.Slack()
	if bus == slack {
		return Undefined, PathDiagnostic{}, nil
	}

	path, err := gridpath.ShortestPath(topo, bus, slack)
	if errors.Is(err, gridpath.ErrNoPath) {
		return Undefined, PathDiagnostic{}, nil
	}
	if err != nil {
		return 0, PathDiagnostic{}, fmt.Errorf("margin: path: bus %d: %w", bus, err)
	}
	// re-terminate at the first slack occurrence
	for i, b := range path {
		if b == slack {
			path = path[:i+1]

			break
		}
	}
	if len(path) < 2 {
		return Undefined, PathDiagnostic{}, nil
	}

	// the origin voltage is held constant across the whole walk
	vFromSq := s.VmPU[bus] * s.VmPU[bus]
	vToSq := s.VmPU[slack] * s.VmPU[slack]

	var diag PathDiagnostic
	sens := 1.0
	if wantDiag {
		diag.Path = append([]grid.BusID(nil), path...)
		diag.Sensitivities = make([]float64, 1, len(path))
		diag.Sensitivities[0] = sens
	}

	var sumRpXq, sumPowerTerm float64
	for i := 0; i+1 < len(path); i++ {
		bv, err := grid.ComputeBranchVariables(topo, s, path[i], path[i+1])
		if err != nil {
			return 0, PathDiagnostic{}, fmt.Errorf("margin: path %d->%d: %w", path[i], path[i+1], err)
		}
		sumRpXq += bv.RpXq
		sumPowerTerm += bv.ZSqLoss * vFromSq
		sens *= 1 - bv.ZSqSSq/(bv.VSendSq*bv.VSendSq)
		if wantDiag {
			diag.Sensitivities = append(diag.Sensitivities, sens)
		}
	}

	root := vToSq + 2*sumRpXq

	return root*root - 4*sumPowerTerm, diag, nil
}
