package cmat

import (
	"fmt"
	"math/cmplx"
)

// LU holds the result of an LU factorization with partial pivoting:
// P·A = L·U with L unit lower triangular and U upper triangular, packed
// into a single matrix. A factorization is reusable across any number of
// Solve calls.
type LU struct {
	lu   *Dense // L below the diagonal (unit diag implied), U on and above
	perm []int  // perm[i] = original row index now in position i
	n    int
}

// Factorize computes the LU factorization of the square matrix a with
// partial pivoting.
// Blueprint:
//
//	Stage 1 (Validate): a non-nil and square.
//	Stage 2 (Prepare): copy a into the working matrix, identity permutation.
//	Stage 3 (Execute): for each column, select the largest-magnitude pivot,
//	        swap rows, eliminate below the diagonal.
//	Stage 4 (Finalize): return the packed factorization.
//
// A pivot column whose remaining entries are all zero yields ErrSingular.
// Complexity: O(n³) time, O(n²) memory, where n = a.Rows().
func Factorize(a *Dense) (*LU, error) {
	// Stage 1: validate input
	if a == nil {
		return nil, fmt.Errorf("Factorize: %w", ErrNilMatrix)
	}
	if a.r != a.c {
		return nil, fmt.Errorf("Factorize: non-square %dx%d: %w", a.r, a.c, ErrNonSquare)
	}
	n := a.r

	// Stage 2: working copy and identity permutation
	work := a.Clone()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	// Stage 3: elimination with partial pivoting
	var (
		k, i, j, p int
		maxAbs, v  float64
		mult       complex128
	)
	for k = 0; k < n; k++ {
		// select pivot: largest magnitude in column k at or below the diagonal
		p, maxAbs = k, cmplx.Abs(work.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = cmplx.Abs(work.data[i*n+k]); v > maxAbs {
				p, maxAbs = i, v
			}
		}
		if maxAbs == 0 {
			return nil, fmt.Errorf("Factorize: zero pivot column %d: %w", k, ErrSingular)
		}
		if p != k {
			swapRows(work, p, k)
			perm[p], perm[k] = perm[k], perm[p]
		}
		// eliminate entries below the pivot
		for i = k + 1; i < n; i++ {
			work.data[i*n+k] /= work.data[k*n+k]
			mult = work.data[i*n+k]
			if mult == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				work.data[i*n+j] -= mult * work.data[k*n+j]
			}
		}
	}

	// Stage 4: package the factorization
	return &LU{lu: work, perm: perm, n: n}, nil
}

// swapRows exchanges rows p and k of m in place.
func swapRows(m *Dense, p, k int) {
	pr, kr := m.data[p*m.c:(p+1)*m.c], m.data[k*m.c:(k+1)*m.c]
	for j := range pr {
		pr[j], kr[j] = kr[j], pr[j]
	}
}

// SolveVec solves A·x = b for a single right-hand side vector.
// Returns ErrDimensionMismatch when len(b) differs from the factored order.
// Complexity: O(n²).
func (f *LU) SolveVec(b []complex128) ([]complex128, error) {
	if len(b) != f.n {
		return nil, fmt.Errorf("LU.SolveVec: rhs length %d, want %d: %w", len(b), f.n, ErrDimensionMismatch)
	}
	n := f.n
	x := make([]complex128, n)
	// apply the row permutation to the right-hand side
	for i := 0; i < n; i++ {
		x[i] = b[f.perm[i]]
	}
	// forward substitution: L·y = P·b (unit diagonal)
	var i, k int
	for i = 1; i < n; i++ {
		for k = 0; k < i; k++ {
			x[i] -= f.lu.data[i*n+k] * x[k]
		}
	}
	// backward substitution: U·x = y
	for i = n - 1; i >= 0; i-- {
		for k = i + 1; k < n; k++ {
			x[i] -= f.lu.data[i*n+k] * x[k]
		}
		x[i] /= f.lu.data[i*n+i]
	}

	return x, nil
}

// Solve solves A·X = B column by column for a multi-column right-hand side.
// Returns ErrDimensionMismatch when B's row count differs from the factored
// order. Complexity: O(n²·k) for k right-hand sides.
func (f *LU) Solve(b *Dense) (*Dense, error) {
	if b == nil {
		return nil, fmt.Errorf("LU.Solve: %w", ErrNilMatrix)
	}
	if b.r != f.n {
		return nil, fmt.Errorf("LU.Solve: rhs rows %d, want %d: %w", b.r, f.n, ErrDimensionMismatch)
	}

	out, err := NewDense(b.r, b.c)
	if err != nil {
		return nil, fmt.Errorf("LU.Solve: %w", err)
	}
	col := make([]complex128, b.r)
	for j := 0; j < b.c; j++ {
		for i := 0; i < b.r; i++ {
			col[i] = b.data[i*b.c+j]
		}
		x, err := f.SolveVec(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < b.r; i++ {
			out.data[i*out.c+j] = x[i]
		}
	}

	return out, nil
}

// Inverse returns the inverse of the square matrix a, or ErrSingular when
// no factorization exists. Complexity: O(n³).
func Inverse(a *Dense) (*Dense, error) {
	f, err := Factorize(a)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	eye, err := Identity(f.n)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	inv, err := f.Solve(eye)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	return inv, nil
}
