package margin

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/zbus"
)

// InjectionMargins computes |V_h| − Σ_k |Z_hk·I_k| for every bus kept by
// the slack reduction, keyed by external bus ID. A degenerate (zero)
// voltage poisons its injection current with non-finite values, which
// propagate into the affected margins instead of being clamped.
func InjectionMargins(topo *grid.Topology, s *grid.SolvedState) (map[grid.BusID]float64, error) {
	if err := s.Validate(topo); err != nil {
		return nil, fmt.Errorf("margin: injection: %w", err)
	}

	v, err := grid.ComplexVoltages(s)
	if err != nil {
		return nil, fmt.Errorf("margin: injection: %w", err)
	}
	curr, err := grid.InjectionCurrents(s, v)
	if err != nil {
		return nil, fmt.Errorf("margin: injection: %w", err)
	}

	slackInternal, ok := s.Perm.Internal(topo.Slack())
	if !ok {
		return nil, fmt.Errorf("margin: injection: slack bus %d: %w", topo.Slack(), grid.ErrPermutationMismatch)
	}
	red, err := zbus.Reduce(s.Ybus, slackInternal)
	if err != nil {
		return nil, fmt.Errorf("margin: injection: %w", err)
	}

	out := make(map[grid.BusID]float64, len(red.Keep))
	for h, busInternal := range red.Keep {
		var drop float64
		for k, other := range red.Keep {
			z, err := red.Z.At(h, k)
			if err != nil {
				return nil, fmt.Errorf("margin: injection: %w", err)
			}
			drop += cmplx.Abs(z * curr[other])
		}
		bus, ok := s.Perm.External(busInternal)
		if !ok {
			return nil, fmt.Errorf("margin: injection: internal index %d: %w", busInternal, grid.ErrPermutationMismatch)
		}
		out[bus] = cmplx.Abs(v[busInternal]) - drop
	}

	return out, nil
}
