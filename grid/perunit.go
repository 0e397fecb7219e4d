package grid

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ComplexVoltage returns bus b's solved voltage as a complex per-unit
// phasor: vm·exp(i·va) with the stored angle converted from degrees.
// A bus without both magnitude and angle entries yields ErrMissingBusValue.
func ComplexVoltage(s *SolvedState, b BusID) (complex128, error) {
	if s == nil {
		return 0, ErrNilState
	}
	vm, okM := s.VmPU[b]
	va, okA := s.VaDeg[b]
	if !okM || !okA {
		return 0, fmt.Errorf("grid: voltage of bus %d: %w", b, ErrMissingBusValue)
	}

	return cmplx.Rect(vm, va*math.Pi/180), nil
}

// ComplexVoltages returns all bus voltages as a vector in solver-internal
// order (index i holds the voltage of Perm.External(i)).
func ComplexVoltages(s *SolvedState) ([]complex128, error) {
	if s == nil {
		return nil, ErrNilState
	}
	n := s.Perm.N()
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		b, _ := s.Perm.External(i)
		v, err := ComplexVoltage(s, b)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// InjectionCurrents returns the per-unit complex injection current of every
// bus in solver-internal order: conj(S_pu / V) with S = (P + iQ)/BaseMVA.
// v must be the voltage vector in the same internal order (as produced by
// ComplexVoltages). A bus absent from the injection maps contributes zero
// power. A zero voltage makes the division produce non-finite components,
// which are returned as-is; callers guard before consuming such entries.
func InjectionCurrents(s *SolvedState, v []complex128) ([]complex128, error) {
	if s == nil {
		return nil, ErrNilState
	}
	if s.BaseMVA <= 0 {
		return nil, fmt.Errorf("grid: base %v MVA: %w", s.BaseMVA, ErrBadBaseMVA)
	}
	n := s.Perm.N()
	if len(v) != n {
		return nil, fmt.Errorf("grid: voltage vector length %d, want %d: %w", len(v), n, ErrPermutationMismatch)
	}

	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		b, _ := s.Perm.External(i)
		sPU := complex(s.PMW[b], s.QMvar[b]) / complex(s.BaseMVA, 0)
		out[i] = cmplx.Conj(sPU / v[i])
	}

	return out, nil
}

// LineImpedancePU returns line idx's series impedance in per-unit on the
// system base, using the from-bus voltage zone: Zbase = Vn²/BaseMVA.
func LineImpedancePU(topo *Topology, s *SolvedState, idx int) (complex128, error) {
	if topo == nil {
		return 0, ErrNilTopology
	}
	if s == nil {
		return 0, ErrNilState
	}
	if s.BaseMVA <= 0 {
		return 0, fmt.Errorf("grid: base %v MVA: %w", s.BaseMVA, ErrBadBaseMVA)
	}
	ln, err := topo.Line(idx)
	if err != nil {
		return 0, err
	}
	vn, err := topo.VnKV(ln.From)
	if err != nil {
		return 0, err
	}
	zBase := vn * vn / s.BaseMVA

	return complex(ln.ROhm()/zBase, ln.XOhm()/zBase), nil
}
