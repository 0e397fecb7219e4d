package grid

import "fmt"

// BranchVariables holds the directed per-branch quantities the determinant
// margins are built from. All values are per-unit on the system base; the
// impedance base comes from the sending bus's voltage zone.
type BranchVariables struct {
	R, X             float64 // series resistance/reactance, pu
	VSendSq, VRecvSq float64 // squared voltage magnitudes at the two ends
	POut, QOut       float64 // flow at the matched end, pu
	SSq              float64 // p_out² + q_out²
	ZSq              float64 // r² + x²
	RpXq             float64 // r·p_out + x·q_out, the voltage drop term
	PowerLossRatio   float64 // s² / v_send²
	ZSqLoss          float64 // z² · s² / v_send²
	ZSqSSq           float64 // z² · s²
}

// ComputeBranchVariables extracts the electrical variables of the directed
// branch (sending, receiving). The pair matches a line in either
// orientation; a forward match reads the from-end flow, a reversed match
// the to-end flow. A pair no line joins yields ErrNoSuchBranch; a line
// without solved flow yields ErrMissingLineFlow.
//
// Pure arithmetic over already-solved values; no iteration.
func ComputeBranchVariables(topo *Topology, s *SolvedState, sending, receiving BusID) (BranchVariables, error) {
	if topo == nil {
		return BranchVariables{}, ErrNilTopology
	}
	if s == nil {
		return BranchVariables{}, ErrNilState
	}
	if s.BaseMVA <= 0 {
		return BranchVariables{}, fmt.Errorf("grid: base %v MVA: %w", s.BaseMVA, ErrBadBaseMVA)
	}

	ln, idx, reversed, err := topo.LineBetween(sending, receiving)
	if err != nil {
		return BranchVariables{}, err
	}
	flow, err := s.Flow(idx)
	if err != nil {
		return BranchVariables{}, err
	}

	// the matched orientation selects which end's flow leaves the sending bus
	var pOut, qOut float64
	if reversed {
		pOut, qOut = flow.PToMW/s.BaseMVA, flow.QToMvar/s.BaseMVA
	} else {
		pOut, qOut = flow.PFromMW/s.BaseMVA, flow.QFromMvar/s.BaseMVA
	}

	vn, err := topo.VnKV(sending)
	if err != nil {
		return BranchVariables{}, err
	}
	zBase := vn * vn / s.BaseMVA
	r := ln.ROhm() / zBase
	x := ln.XOhm() / zBase

	vSend, okS := s.VmPU[sending]
	vRecv, okR := s.VmPU[receiving]
	if !okS || !okR {
		return BranchVariables{}, fmt.Errorf("grid: vm of %d or %d: %w", sending, receiving, ErrMissingBusValue)
	}

	v := BranchVariables{
		R:       r,
		X:       x,
		VSendSq: vSend * vSend,
		VRecvSq: vRecv * vRecv,
		POut:    pOut,
		QOut:    qOut,
	}
	v.SSq = pOut*pOut + qOut*qOut
	v.ZSq = r*r + x*x
	v.RpXq = r*pOut + x*qOut
	v.PowerLossRatio = v.SSq / v.VSendSq
	v.ZSqLoss = v.ZSq * v.PowerLossRatio
	v.ZSqSSq = v.ZSq * v.SSq

	return v, nil
}
