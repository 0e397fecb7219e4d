package gridtest

import (
	"fmt"
	"math"

	"github.com/katalvlaran/voltmargin/grid"
	"github.com/katalvlaran/voltmargin/gridpath"
)

// Shared electrical constants of the fixture networks.
const (
	BaseMVA   = 100.0 // system base power
	VnKV      = 20.0  // single voltage zone
	ROhmPerKm = 0.2
	XOhmPerKm = 0.4
	LoadPMW   = 10.0 // per load bus at multiplier 1
	LoadQMvar = 5.0
)

// Load is a constant-power demand at a bus, consumption positive.
type Load struct {
	PMW, QMvar float64
}

// Network bundles a fixture topology with its base loads.
type Network struct {
	Name  string
	Topo  *grid.Topology
	Loads map[grid.BusID]Load
}

// TwoBus builds the minimal radial network: slack 0 feeding load bus 1
// over one line.
func TwoBus() Network {
	topo := mustTopology(grid.TopologySpec{
		Buses: []grid.BusID{0, 1},
		Lines: []grid.Line{
			{From: 0, To: 1, ROhmPerKm: ROhmPerKm, XOhmPerKm: XOhmPerKm, LengthKm: 1},
		},
		Slack: 0,
		VnKV:  map[grid.BusID]float64{0: VnKV, 1: VnKV},
	})

	return Network{
		Name:  "twobus",
		Topo:  topo,
		Loads: map[grid.BusID]Load{1: {PMW: LoadPMW, QMvar: LoadQMvar}},
	}
}

// Star builds a hub-and-spoke network: slack 0 in the center, load buses
// 1..n on legs of increasing length (leg i is 1 + 0.5·(i−1) km), so the
// longest leg reaches collapse first.
func Star(n int) Network {
	if n < 1 {
		panic("gridtest: Star needs at least one leaf")
	}
	buses := make([]grid.BusID, 0, n+1)
	buses = append(buses, 0)
	lines := make([]grid.Line, 0, n)
	vn := map[grid.BusID]float64{0: VnKV}
	loads := make(map[grid.BusID]Load, n)
	for i := 1; i <= n; i++ {
		b := grid.BusID(i)
		buses = append(buses, b)
		vn[b] = VnKV
		lines = append(lines, grid.Line{
			From: 0, To: b,
			ROhmPerKm: ROhmPerKm, XOhmPerKm: XOhmPerKm,
			LengthKm: 1 + 0.5*float64(i-1),
		})
		loads[b] = Load{PMW: LoadPMW, QMvar: LoadQMvar}
	}

	return Network{
		Name:  "star",
		Topo:  mustTopology(grid.TopologySpec{Buses: buses, Lines: lines, Slack: 0, VnKV: vn}),
		Loads: loads,
	}
}

// Chain builds a series feeder 0—1—...—n with the only load at the tail,
// each segment 1 km.
func Chain(n int) Network {
	if n < 1 {
		panic("gridtest: Chain needs at least one segment")
	}
	buses := make([]grid.BusID, 0, n+1)
	lines := make([]grid.Line, 0, n)
	vn := make(map[grid.BusID]float64, n+1)
	for i := 0; i <= n; i++ {
		b := grid.BusID(i)
		buses = append(buses, b)
		vn[b] = VnKV
		if i > 0 {
			lines = append(lines, grid.Line{
				From: grid.BusID(i - 1), To: b,
				ROhmPerKm: ROhmPerKm, XOhmPerKm: XOhmPerKm, LengthKm: 1,
			})
		}
	}

	return Network{
		Name: "chain",
		Topo: mustTopology(grid.TopologySpec{Buses: buses, Lines: lines, Slack: 0, VnKV: vn}),
		Loads: map[grid.BusID]Load{
			grid.BusID(n): {PMW: LoadPMW, QMvar: LoadQMvar},
		},
	}
}

// CollapseMultiplier returns the smallest load multiplier at which any
// feed of the network loses its power-flow solution:
// λ* = v₁²/(2·(d + Z·S₀)) per feed, minimized over feeds.
func (n Network) CollapseMultiplier() (float64, error) {
	lam := math.Inf(1)
	for bus, load := range n.Loads {
		r, x, err := feedImpedancePU(n.Topo, bus)
		if err != nil {
			return 0, err
		}
		p0 := load.PMW / BaseMVA
		q0 := load.QMvar / BaseMVA
		d := r*p0 + x*q0
		m := math.Hypot(r, x) * math.Hypot(p0, q0)
		if d+m <= 0 {
			continue // unloaded feed never collapses
		}
		if l := 1 / (2 * (d + m)); l < lam {
			lam = l
		}
	}

	return lam, nil
}

// feedImpedancePU sums the per-unit series impedance along the shortest
// path from the slack to bus.
func feedImpedancePU(topo *grid.Topology, bus grid.BusID) (r, x float64, err error) {
	path, err := gridpath.ShortestPath(topo, topo.Slack(), bus)
	if err != nil {
		return 0, 0, fmt.Errorf("gridtest: feed to %d: %w", bus, err)
	}

	return pathImpedancePU(topo, path)
}

// mustTopology builds a fixture topology, panicking on construction bugs.
func mustTopology(spec grid.TopologySpec) *grid.Topology {
	topo, err := grid.NewTopology(spec)
	if err != nil {
		panic(fmt.Sprintf("gridtest: fixture topology: %v", err))
	}

	return topo
}
