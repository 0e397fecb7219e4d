package gridtest

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/voltmargin/cmat"
)

// AssembleJacobian builds the polar power-flow Jacobian at a solved
// operating point. Rows and columns cover every non-slack bus, active
// power and angle first, reactive power and magnitude second, so the
// result is 2(n-1) square. Voltages must be non-zero.
func AssembleJacobian(y *cmat.Sparse, v []complex128, slack int) (*mat.Dense, error) {
	if y == nil {
		return nil, fmt.Errorf("AssembleJacobian: %w", cmat.ErrNilMatrix)
	}
	n := y.Rows()
	if y.Cols() != n {
		return nil, fmt.Errorf("AssembleJacobian: %dx%d: %w", n, y.Cols(), cmat.ErrNonSquare)
	}
	if len(v) != n {
		return nil, fmt.Errorf("AssembleJacobian: %d voltages for %d buses: %w", len(v), n, cmat.ErrDimensionMismatch)
	}
	if slack < 0 || slack >= n {
		return nil, fmt.Errorf("AssembleJacobian: slack index %d of %d: %w", slack, n, cmat.ErrIndexOutOfBounds)
	}
	if n < 2 {
		return nil, fmt.Errorf("AssembleJacobian: %d buses leave nothing to perturb: %w", n, cmat.ErrInvalidDimensions)
	}

	yd, err := y.ToDense()
	if err != nil {
		return nil, fmt.Errorf("AssembleJacobian: %w", err)
	}
	iv, err := cmat.MulVec(yd, v)
	if err != nil {
		return nil, fmt.Errorf("AssembleJacobian: %w", err)
	}

	// polar point quantities per bus
	vm := make([]float64, n)
	th := make([]float64, n)
	pInj := make([]float64, n)
	qInj := make([]float64, n)
	for i := 0; i < n; i++ {
		vm[i] = cmplx.Abs(v[i])
		th[i] = cmplx.Phase(v[i])
		s := v[i] * cmplx.Conj(iv[i])
		pInj[i], qInj[i] = real(s), imag(s)
	}

	pq := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != slack {
			pq = append(pq, i)
		}
	}
	m := len(pq)

	jac := mat.NewDense(2*m, 2*m, nil)
	for ri, i := range pq {
		gii, bii := splitAdmittance(yd, i, i)
		for ci, j := range pq {
			if i == j {
				jac.Set(ri, ci, -qInj[i]-bii*vm[i]*vm[i])
				jac.Set(ri, m+ci, pInj[i]/vm[i]+gii*vm[i])
				jac.Set(m+ri, ci, pInj[i]-gii*vm[i]*vm[i])
				jac.Set(m+ri, m+ci, qInj[i]/vm[i]-bii*vm[i])
				continue
			}
			gij, bij := splitAdmittance(yd, i, j)
			dth := th[i] - th[j]
			sin, cos := math.Sin(dth), math.Cos(dth)
			jac.Set(ri, ci, vm[i]*vm[j]*(gij*sin-bij*cos))
			jac.Set(ri, m+ci, vm[i]*(gij*cos+bij*sin))
			jac.Set(m+ri, ci, -vm[i]*vm[j]*(gij*cos+bij*sin))
			jac.Set(m+ri, m+ci, vm[i]*(gij*sin-bij*cos))
		}
	}

	return jac, nil
}

// splitAdmittance returns the real and imaginary parts of one admittance
// entry.
func splitAdmittance(yd *cmat.Dense, i, j int) (g, b float64) {
	e, _ := yd.At(i, j)

	return real(e), imag(e)
}
