// Package gridpath answers the topology questions the margin engine asks:
// the shortest bus-to-bus path and the set of leaf buses.
//
// What
//
//   - ShortestPath: breadth-first hop-count path between two buses over
//     the line adjacency, returned as an ordered bus sequence including
//     both endpoints. A bus paired with itself yields the single-element
//     path.
//   - LeafBuses: the degree-1 buses excluding the slack, in ascending
//     order. These are the feeder ends where voltage margins bottom out.
//
// Determinism
//
//	Topology adjacency lists are sorted ascending and BFS enqueues
//	neighbors in that order, so among equal-length paths the same one is
//	returned on every call.
//
// Complexity (V = buses, E = lines)
//
//   - ShortestPath: O(V + E) time, O(V) memory.
//   - LeafBuses:    O(V) time.
//
// Errors
//
//   - ErrNilTopology if the topology pointer is nil.
//   - ErrBusNotFound if either endpoint is not part of the topology.
//   - ErrNoPath if the endpoints lie in different connected components.
//
// All sentinels are matched with errors.Is.
package gridpath
