package grid_test

import (
	"testing"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/stretchr/testify/require"
)

// threeBusTopology builds slack(1)—(2)—(3) with one voltage zone change:
// bus 3 sits at 10 kV while 1 and 2 sit at 20 kV.
func threeBusTopology(t *testing.T) *grid.Topology {
	t.Helper()
	topo, err := grid.NewTopology(grid.TopologySpec{
		Buses: []grid.BusID{1, 2, 3},
		Lines: []grid.Line{
			{From: 1, To: 2, ROhmPerKm: 0.2, XOhmPerKm: 0.4, LengthKm: 1},
			{From: 2, To: 3, ROhmPerKm: 0.1, XOhmPerKm: 0.3, LengthKm: 2},
		},
		Slack: 1,
		VnKV:  map[grid.BusID]float64{1: 20, 2: 20, 3: 10},
	})
	require.NoError(t, err)

	return topo
}

// threeBusState pairs with threeBusTopology: flat-ish voltages, one load at
// bus 3, solved flows on both lines.
func threeBusState(t *testing.T) *grid.SolvedState {
	t.Helper()
	perm, err := grid.NewPermutation([]grid.BusID{1, 2, 3})
	require.NoError(t, err)

	return &grid.SolvedState{
		VmPU:  map[grid.BusID]float64{1: 1.0, 2: 0.98, 3: 0.95},
		VaDeg: map[grid.BusID]float64{1: 0, 2: -1.2, 3: -2.5},
		PMW:   map[grid.BusID]float64{3: 10},
		QMvar: map[grid.BusID]float64{3: 5},
		LineFlows: map[int]grid.LineFlow{
			0: {PFromMW: 10.4, QFromMvar: 5.3, PToMW: -10.2, QToMvar: -5.2},
			1: {PFromMW: 10.2, QFromMvar: 5.2, PToMW: -10.0, QToMvar: -5.0},
		},
		BaseMVA: 100,
		Perm:    perm,
	}
}
