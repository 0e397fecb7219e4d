package margin

import (
	"fmt"

	"github.com/katalvlaran/voltmargin/grid"
)

// BranchMargins computes the single-branch determinant margin
// (v_send² − 2(r·p + x·q))² for every line in both orientations. The
// two directions of one line are independent entries: each reads the
// flow at its own sending end.
func BranchMargins(topo *grid.Topology, s *grid.SolvedState) (map[LineDirection]float64, error) {
	if err := s.Validate(topo); err != nil {
		return nil, fmt.Errorf("margin: branch: %w", err)
	}

	out := make(map[LineDirection]float64, 2*topo.NumLines())
	for _, ln := range topo.Lines() {
		for _, dir := range []LineDirection{
			{Sending: ln.From, Receiving: ln.To},
			{Sending: ln.To, Receiving: ln.From},
		} {
			m, err := directedBranchMargin(topo, s, dir)
			if err != nil {
				return nil, err
			}
			out[dir] = m
		}
	}

	return out, nil
}

// directedBranchMargin evaluates one orientation of one line.
func directedBranchMargin(topo *grid.Topology, s *grid.SolvedState, dir LineDirection) (float64, error) {
	bv, err := grid.ComputeBranchVariables(topo, s, dir.Sending, dir.Receiving)
	if err != nil {
		return 0, fmt.Errorf("margin: branch %d->%d: %w", dir.Sending, dir.Receiving, err)
	}
	root := bv.VSendSq - 2*bv.RpXq

	return root * root, nil
}
