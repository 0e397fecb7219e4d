package grid

import "errors"

var (
	// ErrNoBuses indicates a topology was built with an empty bus list.
	ErrNoBuses = errors.New("grid: topology needs at least one bus")
	// ErrDuplicateBus indicates the same bus ID appeared twice.
	ErrDuplicateBus = errors.New("grid: duplicate bus id")
	// ErrUnknownBus indicates a referenced bus ID is not part of the topology.
	ErrUnknownBus = errors.New("grid: unknown bus id")
	// ErrBadLine indicates a line with invalid endpoints or parameters.
	ErrBadLine = errors.New("grid: invalid line")
	// ErrUnknownLine indicates a line index outside the topology's line list.
	ErrUnknownLine = errors.New("grid: unknown line index")
	// ErrBadBaseVoltage indicates a missing or non-positive bus base voltage.
	ErrBadBaseVoltage = errors.New("grid: base voltage must be > 0")
	// ErrBadBaseMVA indicates a non-positive system base power.
	ErrBadBaseMVA = errors.New("grid: base MVA must be > 0")
	// ErrNoSuchBranch indicates that no line joins a (sending, receiving)
	// pair in either orientation.
	ErrNoSuchBranch = errors.New("grid: no branch between bus pair")
	// ErrNilTopology indicates a nil *Topology argument.
	ErrNilTopology = errors.New("grid: topology is nil")
	// ErrNilState indicates a nil *SolvedState argument.
	ErrNilState = errors.New("grid: solved state is nil")
	// ErrMissingBusValue indicates a solved-state map lacks an entry for a
	// bus the topology contains.
	ErrMissingBusValue = errors.New("grid: bus value missing from solved state")
	// ErrMissingLineFlow indicates a solved-state flow map lacks an entry
	// for a line the topology contains.
	ErrMissingLineFlow = errors.New("grid: line flow missing from solved state")
	// ErrPermutationMismatch indicates a permutation whose size or members
	// disagree with the data it is applied to.
	ErrPermutationMismatch = errors.New("grid: permutation mismatch")
)
