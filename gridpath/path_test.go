package gridpath_test

import (
	"testing"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/gridpath"
	"github.com/stretchr/testify/require"
)

// testLine builds a unit-parameter line between two buses.
func testLine(from, to grid.BusID) grid.Line {
	return grid.Line{From: from, To: to, ROhmPerKm: 0.1, XOhmPerKm: 0.1, LengthKm: 1}
}

// buildTopo wires the given lines over the given buses with slack at the
// first bus.
func buildTopo(t *testing.T, buses []grid.BusID, lines []grid.Line) *grid.Topology {
	t.Helper()
	vn := make(map[grid.BusID]float64, len(buses))
	for _, b := range buses {
		vn[b] = 20
	}
	topo, err := grid.NewTopology(grid.TopologySpec{
		Buses: buses, Lines: lines, Slack: buses[0], VnKV: vn,
	})
	require.NoError(t, err)

	return topo
}

// TestShortestPath_Chain verifies the ordered path on a series feeder.
func TestShortestPath_Chain(t *testing.T) {
	topo := buildTopo(t,
		[]grid.BusID{0, 1, 2, 3},
		[]grid.Line{testLine(0, 1), testLine(1, 2), testLine(2, 3)},
	)

	path, err := gridpath.ShortestPath(topo, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []grid.BusID{3, 2, 1, 0}, path)

	path, err = gridpath.ShortestPath(topo, 0, 3)
	require.NoError(t, err)
	require.Equal(t, []grid.BusID{0, 1, 2, 3}, path)
}

// TestShortestPath_SameBus verifies the single-element path.
func TestShortestPath_SameBus(t *testing.T) {
	topo := buildTopo(t, []grid.BusID{0, 1}, []grid.Line{testLine(0, 1)})

	path, err := gridpath.ShortestPath(topo, 1, 1)
	require.NoError(t, err)
	require.Equal(t, []grid.BusID{1}, path)
}

// TestShortestPath_PicksShorter verifies hop-count minimization when a
// longer detour exists.
func TestShortestPath_PicksShorter(t *testing.T) {
	// ring 0-1-2-3-0 plus chord 0-2: path 2→0 must use the chord
	topo := buildTopo(t,
		[]grid.BusID{0, 1, 2, 3},
		[]grid.Line{testLine(0, 1), testLine(1, 2), testLine(2, 3), testLine(3, 0), testLine(0, 2)},
	)

	path, err := gridpath.ShortestPath(topo, 2, 0)
	require.NoError(t, err)
	require.Equal(t, []grid.BusID{2, 0}, path)
}

// TestShortestPath_DeterministicTieBreak verifies the ascending-neighbor
// expansion picks the same equal-length path every time.
func TestShortestPath_DeterministicTieBreak(t *testing.T) {
	// two equal 2-hop routes from 3 to 0: via 1 or via 2
	topo := buildTopo(t,
		[]grid.BusID{0, 1, 2, 3},
		[]grid.Line{testLine(0, 1), testLine(0, 2), testLine(1, 3), testLine(2, 3)},
	)

	for i := 0; i < 10; i++ {
		path, err := gridpath.ShortestPath(topo, 3, 0)
		require.NoError(t, err)
		require.Equal(t, []grid.BusID{3, 1, 0}, path, "lowest neighbor wins ties")
	}
}

// TestShortestPath_Disconnected verifies ErrNoPath across components.
func TestShortestPath_Disconnected(t *testing.T) {
	topo := buildTopo(t,
		[]grid.BusID{0, 1, 2, 3},
		[]grid.Line{testLine(0, 1), testLine(2, 3)},
	)

	_, err := gridpath.ShortestPath(topo, 0, 3)
	require.ErrorIs(t, err, gridpath.ErrNoPath)
}

// TestShortestPath_Validation verifies nil and unknown-bus errors.
func TestShortestPath_Validation(t *testing.T) {
	topo := buildTopo(t, []grid.BusID{0, 1}, []grid.Line{testLine(0, 1)})

	_, err := gridpath.ShortestPath(nil, 0, 1)
	require.ErrorIs(t, err, gridpath.ErrNilTopology)
	_, err = gridpath.ShortestPath(topo, 9, 1)
	require.ErrorIs(t, err, gridpath.ErrBusNotFound)
	_, err = gridpath.ShortestPath(topo, 0, 9)
	require.ErrorIs(t, err, gridpath.ErrBusNotFound)
}

// TestLeafBuses verifies degree-1 selection with slack excluded.
func TestLeafBuses(t *testing.T) {
	// star: slack 0 in the center, leaves 1..3, plus isolated bus 4
	topo := buildTopo(t,
		[]grid.BusID{0, 1, 2, 3, 4},
		[]grid.Line{testLine(0, 1), testLine(0, 2), testLine(0, 3)},
	)

	leaves, err := gridpath.LeafBuses(topo)
	require.NoError(t, err)
	require.Equal(t, []grid.BusID{1, 2, 3}, leaves, "isolated bus 4 is not a leaf")
}

// TestLeafBuses_SlackIsLeafShaped verifies a degree-1 slack stays excluded.
func TestLeafBuses_SlackIsLeafShaped(t *testing.T) {
	topo := buildTopo(t,
		[]grid.BusID{0, 1, 2},
		[]grid.Line{testLine(0, 1), testLine(1, 2)},
	)

	leaves, err := gridpath.LeafBuses(topo)
	require.NoError(t, err)
	require.Equal(t, []grid.BusID{2}, leaves, "slack 0 has degree 1 but is not a leaf")

	_, err = gridpath.LeafBuses(nil)
	require.ErrorIs(t, err, gridpath.ErrNilTopology)
}
