package cmat_test

import (
	"testing"

	"github.com/katalvlaran/voltmargin/cmat"
	"github.com/stretchr/testify/require"
)

// TestNewSparse_InvalidDimensions verifies that non-positive shapes are rejected.
func TestNewSparse_InvalidDimensions(t *testing.T) {
	_, err := cmat.NewSparse(0, 1)
	require.ErrorIs(t, err, cmat.ErrInvalidDimensions)
	_, err = cmat.NewSparse(1, -1)
	require.ErrorIs(t, err, cmat.ErrInvalidDimensions)
}

// TestSparse_AbsentEntriesReadZero verifies the implicit-zero contract.
func TestSparse_AbsentEntriesReadZero(t *testing.T) {
	m, err := cmat.NewSparse(3, 3)
	require.NoError(t, err)

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, complex128(0), v)
	require.Equal(t, 0, m.NNZ())
}

// TestSparse_AddAccumulates verifies the stamping behavior: duplicate Add
// calls sum, and sums that cancel drop the stored entry.
func TestSparse_AddAccumulates(t *testing.T) {
	m, err := cmat.NewSparse(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Add(0, 0, 1+1i))
	require.NoError(t, m.Add(0, 0, 2-3i))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 3-2i, v)
	require.Equal(t, 1, m.NNZ())

	// cancel back to zero removes the entry
	require.NoError(t, m.Add(0, 0, -(3 - 2i)))
	require.Equal(t, 0, m.NNZ())
}

// TestSparse_SetOverwrites verifies Set replaces and zero deletes.
func TestSparse_SetOverwrites(t *testing.T) {
	m, err := cmat.NewSparse(2, 2)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 1, 4i))
	require.NoError(t, m.Set(1, 1, 7))
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, complex128(7), v)

	require.NoError(t, m.Set(1, 1, 0))
	require.Equal(t, 0, m.NNZ())
}

// TestSparse_Bounds verifies index validation on all mutators and accessors.
func TestSparse_Bounds(t *testing.T) {
	m, err := cmat.NewSparse(2, 2)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, cmat.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(0, 5, 1), cmat.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Add(-1, 0, 1), cmat.ErrIndexOutOfBounds)
}

// TestSparse_ToDense verifies the dense materialization.
func TestSparse_ToDense(t *testing.T) {
	m, err := cmat.NewSparse(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 2, 1+1i))
	require.NoError(t, m.Set(1, 0, -2))

	d, err := m.ToDense()
	require.NoError(t, err)
	require.Equal(t, 2, d.Rows())
	require.Equal(t, 3, d.Cols())

	v, err := d.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 1+1i, v)
	v, err = d.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, complex128(-2), v)
	v, err = d.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, complex128(0), v)
}

// TestSparse_Submatrix verifies ordered extraction, including reordering.
func TestSparse_Submatrix(t *testing.T) {
	m, err := cmat.NewSparse(3, 3)
	require.NoError(t, err)
	// fill with distinguishable values: entry (i,j) = i*10 + j
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.NoError(t, m.Set(i, j, complex(float64(i*10+j), 0)))
		}
	}

	// drop row/col 1 and swap the remaining order
	sub, err := m.Submatrix([]int{2, 0}, []int{2, 0})
	require.NoError(t, err)
	require.Equal(t, 2, sub.Rows())
	require.Equal(t, 2, sub.Cols())

	v, err := sub.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, complex128(22), v)
	v, err = sub.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, complex128(20), v)
	v, err = sub.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, complex128(2), v)
	v, err = sub.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, complex128(0), v)
}

// TestSparse_SubmatrixErrors verifies empty and out-of-range index lists.
func TestSparse_SubmatrixErrors(t *testing.T) {
	m, err := cmat.NewSparse(2, 2)
	require.NoError(t, err)

	_, err = m.Submatrix(nil, []int{0})
	require.ErrorIs(t, err, cmat.ErrInvalidDimensions)
	_, err = m.Submatrix([]int{0}, []int{})
	require.ErrorIs(t, err, cmat.ErrInvalidDimensions)
	_, err = m.Submatrix([]int{0, 2}, []int{0})
	require.ErrorIs(t, err, cmat.ErrIndexOutOfBounds)
	_, err = m.Submatrix([]int{0}, []int{-1})
	require.ErrorIs(t, err, cmat.ErrIndexOutOfBounds)
}

// TestSparse_CloneIndependence verifies deep copy semantics.
func TestSparse_CloneIndependence(t *testing.T) {
	m, err := cmat.NewSparse(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 9))

	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, -9))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, complex128(9), v)
}
