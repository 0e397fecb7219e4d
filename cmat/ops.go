package cmat

import "fmt"

// Mul returns the matrix product a·b.
// Returns ErrDimensionMismatch when a.Cols() != b.Rows().
// Complexity: O(a.Rows()*a.Cols()*b.Cols()).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Mul: %w", ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, fmt.Errorf("Mul: %dx%d by %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch)
	}

	out, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, fmt.Errorf("Mul: %w", err)
	}
	var sum complex128
	for i := 0; i < a.r; i++ {
		for j := 0; j < b.c; j++ {
			sum = 0
			for k := 0; k < a.c; k++ {
				sum += a.data[i*a.c+k] * b.data[k*b.c+j]
			}
			out.data[i*out.c+j] = sum
		}
	}

	return out, nil
}

// MulVec returns the matrix-vector product a·x.
// Returns ErrDimensionMismatch when len(x) != a.Cols().
// Complexity: O(a.Rows()*a.Cols()).
func MulVec(a *Dense, x []complex128) ([]complex128, error) {
	if a == nil {
		return nil, fmt.Errorf("MulVec: %w", ErrNilMatrix)
	}
	if len(x) != a.c {
		return nil, fmt.Errorf("MulVec: vector length %d, want %d: %w", len(x), a.c, ErrDimensionMismatch)
	}

	out := make([]complex128, a.r)
	var sum complex128
	for i := 0; i < a.r; i++ {
		sum = 0
		for k := 0; k < a.c; k++ {
			sum += a.data[i*a.c+k] * x[k]
		}
		out[i] = sum
	}

	return out, nil
}

// Scale returns s·a as a new matrix.
func Scale(s complex128, a *Dense) (*Dense, error) {
	if a == nil {
		return nil, fmt.Errorf("Scale: %w", ErrNilMatrix)
	}
	out := a.Clone()
	for i := range out.data {
		out.data[i] *= s
	}

	return out, nil
}
