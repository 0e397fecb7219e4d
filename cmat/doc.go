// Package cmat provides complex-valued linear algebra primitives for
// admittance-matrix computations: a dense row-major matrix, a sparse
// accumulator for bus admittance assembly, and an LU factorization with
// partial pivoting for solving and inverting.
//
// What
//
//   - Dense: row-major complex128 matrix with bounds-checked At/Set.
//   - Sparse: coordinate-map accumulator (Add sums duplicate entries, the
//     natural shape for admittance stamping), convertible to Dense and
//     sliceable via Submatrix for bus partitioning.
//   - LU: factorization with partial pivoting, multi-RHS Solve, Inverse.
//     A pivot column with no nonzero entry reports ErrSingular; there is
//     no fallback to a pseudo-inverse.
//
// Why
//
//   - Bus admittance matrices are complex and sparse; their reductions
//     (slack deletion, generator/load partitioning) and inversions are the
//     core of voltage-stability indicators.
//
// Determinism
//
//	Pivot selection takes the largest magnitude with the lowest row index
//	on ties, so factorizations are fully reproducible.
//
// Complexity (n = dimension, k = right-hand sides)
//
//   - Factorize: O(n³) time, O(n²) memory.
//   - Solve:     O(n²·k) after factorization.
//   - Inverse:   O(n³).
//
// Errors
//
//   - ErrInvalidDimensions for non-positive allocation sizes.
//   - ErrIndexOutOfBounds for invalid At/Set/Submatrix indices.
//   - ErrDimensionMismatch for incompatible operand shapes.
//   - ErrNonSquare where a square matrix is required.
//   - ErrSingular when factorization meets an all-zero pivot column.
//   - ErrNilMatrix when a nil matrix pointer is passed.
//
// All errors are package-level sentinels matched with errors.Is.
package cmat
