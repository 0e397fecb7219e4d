package zbus

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voltmargin/cmat"
)

var (
	// ErrNilMatrix indicates a nil admittance matrix.
	ErrNilMatrix = errors.New("zbus: admittance matrix is nil")
	// ErrNonSquare indicates a non-square admittance matrix.
	ErrNonSquare = errors.New("zbus: admittance matrix is not square")
	// ErrSlackIndex indicates a slack index outside the matrix order.
	ErrSlackIndex = errors.New("zbus: slack index out of range")
	// ErrEmptyReduction indicates no buses remain once the slack is removed.
	ErrEmptyReduction = errors.New("zbus: no buses remain after slack removal")
)

// ErrSingular aliases the underlying factorization sentinel so callers can
// match the reduction failure without importing cmat.
var ErrSingular = cmat.ErrSingular

// Reduced is the outcome of a Z-bus reduction: the inverted reduced
// admittance matrix and the internal bus index each reduced row/column
// corresponds to, in ascending order.
type Reduced struct {
	Z    *cmat.Dense
	Keep []int
}

// Reduce removes slack's row and column from y and inverts the remainder.
// y is indexed in solver-internal order; slack is the internal index of
// the slack bus. A singular reduced matrix yields an error matching
// ErrSingular, distinct from any validation failure.
func Reduce(y *cmat.Sparse, slack int) (*Reduced, error) {
	if y == nil {
		return nil, ErrNilMatrix
	}
	n := y.Rows()
	if n != y.Cols() {
		return nil, fmt.Errorf("zbus: %dx%d: %w", n, y.Cols(), ErrNonSquare)
	}
	if slack < 0 || slack >= n {
		return nil, fmt.Errorf("zbus: slack %d of %d: %w", slack, n, ErrSlackIndex)
	}
	if n < 2 {
		return nil, fmt.Errorf("zbus: order %d: %w", n, ErrEmptyReduction)
	}

	keep := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != slack {
			keep = append(keep, i)
		}
	}

	yRed, err := y.Submatrix(keep, keep)
	if err != nil {
		return nil, fmt.Errorf("zbus: reduce: %w", err)
	}
	z, err := cmat.Inverse(yRed)
	if err != nil {
		return nil, fmt.Errorf("zbus: invert reduced admittance: %w", err)
	}

	return &Reduced{Z: z, Keep: keep}, nil
}
