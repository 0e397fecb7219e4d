package gridpath

import (
	"fmt"

	"github.com/katalvlaran/voltmargin/grid"
)

// queueItem pairs a bus with its BFS depth.
type queueItem struct {
	bus   grid.BusID
	depth int
}

// walker encapsulates mutable BFS state for one path query.
type walker struct {
	topo   *grid.Topology
	queue  []queueItem
	parent map[grid.BusID]grid.BusID
	seen   map[grid.BusID]bool
}

// ShortestPath returns the hop-count shortest path from bus from to bus to
// as an ordered sequence including both endpoints. When from == to the
// path is the single bus. Disconnected endpoints yield ErrNoPath.
func ShortestPath(topo *grid.Topology, from, to grid.BusID) ([]grid.BusID, error) {
	if topo == nil {
		return nil, ErrNilTopology
	}
	if !topo.HasBus(from) {
		return nil, fmt.Errorf("gridpath: bus %d: %w", from, ErrBusNotFound)
	}
	if !topo.HasBus(to) {
		return nil, fmt.Errorf("gridpath: bus %d: %w", to, ErrBusNotFound)
	}
	if from == to {
		return []grid.BusID{from}, nil
	}

	n := topo.NumBuses()
	w := &walker{
		topo:   topo,
		queue:  make([]queueItem, 0, n),
		parent: make(map[grid.BusID]grid.BusID, n),
		seen:   make(map[grid.BusID]bool, n),
	}
	w.seen[from] = true
	w.queue = append(w.queue, queueItem{bus: from, depth: 0})

	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		if item.bus == to {
			return w.rebuild(from, to), nil
		}
		// adjacency is pre-sorted, so expansion order is deterministic
		nbrs, err := w.topo.Neighbors(item.bus)
		if err != nil {
			return nil, fmt.Errorf("gridpath: neighbors of %d: %w", item.bus, err)
		}
		for _, nbr := range nbrs {
			if w.seen[nbr] {
				continue
			}
			w.seen[nbr] = true
			w.parent[nbr] = item.bus
			w.queue = append(w.queue, queueItem{bus: nbr, depth: item.depth + 1})
		}
	}

	return nil, fmt.Errorf("gridpath: %d to %d: %w", from, to, ErrNoPath)
}

// rebuild walks the parent links back from to and reverses the result.
func (w *walker) rebuild(from, to grid.BusID) []grid.BusID {
	path := []grid.BusID{to}
	for cur := to; cur != from; {
		cur = w.parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// LeafBuses returns the degree-1 buses excluding the slack, ascending.
// Isolated buses (degree 0) are not leaves.
func LeafBuses(topo *grid.Topology) ([]grid.BusID, error) {
	if topo == nil {
		return nil, ErrNilTopology
	}
	leaves := make([]grid.BusID, 0, topo.NumBuses())
	for _, b := range topo.Buses() {
		if b == topo.Slack() {
			continue
		}
		deg, err := topo.Degree(b)
		if err != nil {
			return nil, fmt.Errorf("gridpath: degree of %d: %w", b, err)
		}
		if deg == 1 {
			leaves = append(leaves, b)
		}
	}

	return leaves, nil
}
