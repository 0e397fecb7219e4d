package lindex

import (
	"errors"

	"github.com/katalvlaran/voltmargin/grid"
)

// DegenerateVoltageTol is the voltage magnitude below which a load bus is
// treated as collapsed and assigned an L-index of +Inf.
const DegenerateVoltageTol = 1e-12

var (
	// ErrNilTopology indicates a nil topology was passed.
	ErrNilTopology = errors.New("lindex: topology is nil")
	// ErrNilState indicates a nil solved state was passed.
	ErrNilState = errors.New("lindex: solved state is nil")
	// ErrNilYbus indicates the solved state carries no admittance matrix.
	ErrNilYbus = errors.New("lindex: solved state has no admittance matrix")
	// ErrEmptyPartition indicates the generator or load bus set is empty.
	ErrEmptyPartition = errors.New("lindex: generator or load bus set is empty")
)

// Result carries the L-index of every load bus plus the critical entry.
// Max is the largest value and CriticalBus its bus; higher means closer
// to instability.
type Result struct {
	ByBus       map[grid.BusID]float64
	Max         float64
	CriticalBus grid.BusID
}

// Options configures the bus partition.
//
// GeneratorBuses – explicit generator set; nil selects slack + topology
// generators. LoadBuses – explicit load set, kept in caller order; nil
// selects all remaining buses in ascending order. An explicitly empty
// slice is an ErrEmptyPartition, not a default.
type Options struct {
	GeneratorBuses []grid.BusID
	LoadBuses      []grid.BusID
}

// Option is a functional option for Compute.
type Option func(*Options)

// WithGeneratorBuses overrides the generator bus set.
func WithGeneratorBuses(buses ...grid.BusID) Option {
	return func(o *Options) {
		o.GeneratorBuses = buses
	}
}

// WithLoadBuses overrides the load bus set.
func WithLoadBuses(buses ...grid.BusID) Option {
	return func(o *Options) {
		o.LoadBuses = buses
	}
}

// DefaultOptions returns the zero configuration: both partitions derived
// from the topology.
func DefaultOptions() Options {
	return Options{}
}
