package grid

import (
	"fmt"
	"math"
	"sort"
)

// BusID identifies a bus by its external (caller-facing) number.
// IDs need not be contiguous or start at zero.
type BusID int

// Line is one branch of the network: endpoints plus per-kilometre series
// parameters. Shunt admittance is not modeled by the indicators.
type Line struct {
	From, To  BusID
	ROhmPerKm float64
	XOhmPerKm float64
	LengthKm  float64
}

// ROhm returns the total series resistance of the line in ohms.
func (l Line) ROhm() float64 { return l.ROhmPerKm * l.LengthKm }

// XOhm returns the total series reactance of the line in ohms.
func (l Line) XOhm() float64 { return l.XOhmPerKm * l.LengthKm }

// busPair keys the line lookup table in declared (From, To) orientation.
type busPair struct{ a, b BusID }

// Topology is the immutable static description of a network: buses, lines,
// the slack bus, designated generator buses, and per-bus base voltages.
//
// The constructor builds the line lookup table (keyed by declared From→To
// orientation; directed lookups try the forward key first, then the
// reversed one) and the adjacency index once; Topology is afterwards
// read-only and safe for concurrent use. At most one line joins any bus
// pair, in either orientation: parallel lines are rejected at
// construction, so a pair resolves to exactly one line or to none.
type Topology struct {
	buses  []BusID
	busSet map[BusID]struct{}
	lines  []Line
	slack  BusID
	gens   []BusID
	vnKV   map[BusID]float64
	adj    map[BusID][]BusID
	pairs  map[busPair]int
}

// TopologySpec collects the inputs to NewTopology.
type TopologySpec struct {
	Buses      []BusID
	Lines      []Line
	Slack      BusID
	Generators []BusID           // PV buses; the slack is implicitly a generator
	VnKV       map[BusID]float64 // base voltage per bus, kV
}

// NewTopology validates spec and builds the immutable topology.
// Validation: at least one bus, no duplicate IDs, slack and every
// generator and line endpoint present, no self-loop or parallel lines,
// finite non-negative line parameters with positive length, and a
// positive finite base voltage for every bus.
func NewTopology(spec TopologySpec) (*Topology, error) {
	if len(spec.Buses) == 0 {
		return nil, ErrNoBuses
	}

	busSet := make(map[BusID]struct{}, len(spec.Buses))
	for _, b := range spec.Buses {
		if _, dup := busSet[b]; dup {
			return nil, fmt.Errorf("grid: bus %d: %w", b, ErrDuplicateBus)
		}
		busSet[b] = struct{}{}
	}
	if _, ok := busSet[spec.Slack]; !ok {
		return nil, fmt.Errorf("grid: slack bus %d: %w", spec.Slack, ErrUnknownBus)
	}

	// generators: must exist; the slack is dropped since it is always
	// part of the generator set anyway
	gens := make([]BusID, 0, len(spec.Generators))
	seenGen := make(map[BusID]struct{}, len(spec.Generators))
	for _, g := range spec.Generators {
		if _, ok := busSet[g]; !ok {
			return nil, fmt.Errorf("grid: generator bus %d: %w", g, ErrUnknownBus)
		}
		if g == spec.Slack {
			continue
		}
		if _, dup := seenGen[g]; dup {
			continue
		}
		seenGen[g] = struct{}{}
		gens = append(gens, g)
	}
	sort.Slice(gens, func(i, j int) bool { return gens[i] < gens[j] })

	// base voltages: one positive finite entry per bus
	vnKV := make(map[BusID]float64, len(spec.Buses))
	for _, b := range spec.Buses {
		vn, ok := spec.VnKV[b]
		if !ok || vn <= 0 || math.IsInf(vn, 0) || math.IsNaN(vn) {
			return nil, fmt.Errorf("grid: bus %d (vn=%v): %w", b, vn, ErrBadBaseVoltage)
		}
		vnKV[b] = vn
	}

	// lines: validate, then index the declared orientation and the adjacency
	pairs := make(map[busPair]int, len(spec.Lines))
	adjSet := make(map[BusID]map[BusID]struct{}, len(spec.Buses))
	lines := make([]Line, len(spec.Lines))
	copy(lines, spec.Lines)
	for i, ln := range lines {
		if ln.From == ln.To {
			return nil, fmt.Errorf("grid: line %d is a self-loop at bus %d: %w", i, ln.From, ErrBadLine)
		}
		if _, ok := busSet[ln.From]; !ok {
			return nil, fmt.Errorf("grid: line %d from-bus %d: %w", i, ln.From, ErrUnknownBus)
		}
		if _, ok := busSet[ln.To]; !ok {
			return nil, fmt.Errorf("grid: line %d to-bus %d: %w", i, ln.To, ErrUnknownBus)
		}
		if !validLineParam(ln.ROhmPerKm) || !validLineParam(ln.XOhmPerKm) || ln.LengthKm <= 0 || !validLineParam(ln.LengthKm) {
			return nil, fmt.Errorf("grid: line %d parameters (r=%v x=%v len=%v): %w",
				i, ln.ROhmPerKm, ln.XOhmPerKm, ln.LengthKm, ErrBadLine)
		}
		_, dupFwd := pairs[busPair{ln.From, ln.To}]
		_, dupRev := pairs[busPair{ln.To, ln.From}]
		if dupFwd || dupRev {
			return nil, fmt.Errorf("grid: line %d: second line between buses %d and %d: %w",
				i, ln.From, ln.To, ErrBadLine)
		}
		pairs[busPair{ln.From, ln.To}] = i
		addNeighbor(adjSet, ln.From, ln.To)
		addNeighbor(adjSet, ln.To, ln.From)
	}

	// freeze sorted bus and neighbor orderings for deterministic iteration
	buses := make([]BusID, len(spec.Buses))
	copy(buses, spec.Buses)
	sort.Slice(buses, func(i, j int) bool { return buses[i] < buses[j] })
	adj := make(map[BusID][]BusID, len(adjSet))
	for b, set := range adjSet {
		nbrs := make([]BusID, 0, len(set))
		for n := range set {
			nbrs = append(nbrs, n)
		}
		sort.Slice(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] })
		adj[b] = nbrs
	}

	return &Topology{
		buses:  buses,
		busSet: busSet,
		lines:  lines,
		slack:  spec.Slack,
		gens:   gens,
		vnKV:   vnKV,
		adj:    adj,
		pairs:  pairs,
	}, nil
}

// validLineParam reports whether v is a finite non-negative parameter.
func validLineParam(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// addNeighbor records b→n in the adjacency set under construction.
func addNeighbor(adjSet map[BusID]map[BusID]struct{}, b, n BusID) {
	set, ok := adjSet[b]
	if !ok {
		set = make(map[BusID]struct{})
		adjSet[b] = set
	}
	set[n] = struct{}{}
}

// NumBuses returns the number of buses.
func (t *Topology) NumBuses() int { return len(t.buses) }

// NumLines returns the number of lines.
func (t *Topology) NumLines() int { return len(t.lines) }

// Slack returns the slack bus ID.
func (t *Topology) Slack() BusID { return t.slack }

// HasBus reports whether the topology contains bus b.
func (t *Topology) HasBus(b BusID) bool {
	_, ok := t.busSet[b]

	return ok
}

// Buses returns the bus IDs in ascending order. The slice is a copy.
func (t *Topology) Buses() []BusID {
	out := make([]BusID, len(t.buses))
	copy(out, t.buses)

	return out
}

// Generators returns the designated generator buses in ascending order,
// slack excluded. The slice is a copy.
func (t *Topology) Generators() []BusID {
	out := make([]BusID, len(t.gens))
	copy(out, t.gens)

	return out
}

// Lines returns all lines in declaration order. The slice is a copy.
func (t *Topology) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)

	return out
}

// Line returns the line at index idx, or ErrUnknownLine.
func (t *Topology) Line(idx int) (Line, error) {
	if idx < 0 || idx >= len(t.lines) {
		return Line{}, fmt.Errorf("grid: line index %d of %d: %w", idx, len(t.lines), ErrUnknownLine)
	}

	return t.lines[idx], nil
}

// VnKV returns bus b's base voltage in kV, or ErrUnknownBus.
func (t *Topology) VnKV(b BusID) (float64, error) {
	vn, ok := t.vnKV[b]
	if !ok {
		return 0, fmt.Errorf("grid: bus %d: %w", b, ErrUnknownBus)
	}

	return vn, nil
}

// Neighbors returns the buses adjacent to b in ascending order, or
// ErrUnknownBus. The slice is a copy; an isolated bus yields an empty
// slice.
func (t *Topology) Neighbors(b BusID) ([]BusID, error) {
	if !t.HasBus(b) {
		return nil, fmt.Errorf("grid: bus %d: %w", b, ErrUnknownBus)
	}
	nbrs := t.adj[b]
	out := make([]BusID, len(nbrs))
	copy(out, nbrs)

	return out, nil
}

// Degree returns the number of buses adjacent to b, or ErrUnknownBus.
func (t *Topology) Degree(b BusID) (int, error) {
	if !t.HasBus(b) {
		return 0, fmt.Errorf("grid: bus %d: %w", b, ErrUnknownBus)
	}

	return len(t.adj[b]), nil
}

// LineBetween resolves the directed pair (sending, receiving) against the
// line table: the forward key (sending=From) is tried first, then the
// reversed one. It returns the matched line, its index, and whether the
// pair runs against the line's declared orientation. Unknown buses yield
// ErrUnknownBus; a known pair with no joining line yields ErrNoSuchBranch.
func (t *Topology) LineBetween(sending, receiving BusID) (Line, int, bool, error) {
	if !t.HasBus(sending) {
		return Line{}, 0, false, fmt.Errorf("grid: sending bus %d: %w", sending, ErrUnknownBus)
	}
	if !t.HasBus(receiving) {
		return Line{}, 0, false, fmt.Errorf("grid: receiving bus %d: %w", receiving, ErrUnknownBus)
	}
	if idx, ok := t.pairs[busPair{sending, receiving}]; ok {
		return t.lines[idx], idx, false, nil
	}
	if idx, ok := t.pairs[busPair{receiving, sending}]; ok {
		return t.lines[idx], idx, true, nil
	}

	return Line{}, 0, false, fmt.Errorf("grid: %d->%d: %w", sending, receiving, ErrNoSuchBranch)
}
