package gridpath

import "errors"

var (
	// ErrNilTopology indicates a nil topology was passed.
	ErrNilTopology = errors.New("gridpath: topology is nil")
	// ErrBusNotFound indicates an endpoint bus is not part of the topology.
	ErrBusNotFound = errors.New("gridpath: bus not found in topology")
	// ErrNoPath indicates the endpoints are not connected by any line sequence.
	ErrNoPath = errors.New("gridpath: no path between buses")
)
