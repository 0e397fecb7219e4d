package cmat

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("cmat: dimensions must be > 0")
	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("cmat: index out of bounds")
	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("cmat: dimension mismatch")
	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("cmat: matrix is not square")
	// ErrSingular is returned when no usable pivot remains during factorization.
	ErrSingular = errors.New("cmat: singular matrix")
	// ErrNilMatrix indicates that a nil matrix pointer was passed.
	ErrNilMatrix = errors.New("cmat: nil matrix")
)
