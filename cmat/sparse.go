package cmat

import "fmt"

// sparseErrorf wraps an underlying error with Sparse method context.
func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Sparse.%s(%d,%d): %w", method, row, col, err)
}

// coord addresses a single stored entry.
type coord struct{ row, col int }

// Sparse is a coordinate-map complex matrix intended as an assembly
// accumulator: Add sums into existing entries, which matches the way bus
// admittance matrices are stamped branch by branch. Absent entries read
// as zero. Sparse is not safe for concurrent mutation.
type Sparse struct {
	r, c    int
	entries map[coord]complex128
}

// NewSparse creates an r×c Sparse matrix with no stored entries.
// Returns ErrInvalidDimensions when rows or cols is non-positive.
func NewSparse(rows, cols int) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Sparse{r: rows, c: cols, entries: make(map[coord]complex128)}, nil
}

// Rows returns the number of rows in the matrix.
func (m *Sparse) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Sparse) Cols() int { return m.c }

// NNZ returns the number of explicitly stored entries.
func (m *Sparse) NNZ() int { return len(m.entries) }

// check validates (row, col) against the matrix shape.
func (m *Sparse) check(method string, row, col int) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return sparseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return nil
}

// At retrieves the element at (row, col); absent entries are zero.
func (m *Sparse) At(row, col int) (complex128, error) {
	if err := m.check("At", row, col); err != nil {
		return 0, err
	}

	return m.entries[coord{row, col}], nil
}

// Set assigns value v at (row, col), replacing any prior entry.
// Setting an exact zero removes the entry.
func (m *Sparse) Set(row, col int, v complex128) error {
	if err := m.check("Set", row, col); err != nil {
		return err
	}
	if v == 0 {
		delete(m.entries, coord{row, col})

		return nil
	}
	m.entries[coord{row, col}] = v

	return nil
}

// Add accumulates v into the entry at (row, col).
// This is the stamping primitive: repeated Add calls for the same
// coordinate sum their values.
func (m *Sparse) Add(row, col int, v complex128) error {
	if err := m.check("Add", row, col); err != nil {
		return err
	}
	k := coord{row, col}
	sum := m.entries[k] + v
	if sum == 0 {
		delete(m.entries, k)

		return nil
	}
	m.entries[k] = sum

	return nil
}

// ToDense materializes the matrix as a Dense of the same shape.
// Complexity: O(r*c + nnz).
func (m *Sparse) ToDense() (*Dense, error) {
	d, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, fmt.Errorf("Sparse.ToDense: %w", err)
	}
	for k, v := range m.entries {
		d.data[k.row*m.c+k.col] = v
	}

	return d, nil
}

// Submatrix extracts the dense submatrix selected by the given row and
// column index lists, in the given order. Index lists may reorder or
// repeat indices; each must be within the matrix shape.
// Returns ErrInvalidDimensions for empty index lists and
// ErrIndexOutOfBounds for invalid indices.
// Complexity: O(len(rows)*len(cols)).
func (m *Sparse) Submatrix(rows, cols []int) (*Dense, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("Sparse.Submatrix: empty index list: %w", ErrInvalidDimensions)
	}
	for _, r := range rows {
		if r < 0 || r >= m.r {
			return nil, sparseErrorf("Submatrix", r, -1, ErrIndexOutOfBounds)
		}
	}
	for _, c := range cols {
		if c < 0 || c >= m.c {
			return nil, sparseErrorf("Submatrix", -1, c, ErrIndexOutOfBounds)
		}
	}

	d, err := NewDense(len(rows), len(cols))
	if err != nil {
		return nil, fmt.Errorf("Sparse.Submatrix: %w", err)
	}
	for i, r := range rows {
		for j, c := range cols {
			if v, ok := m.entries[coord{r, c}]; ok {
				d.data[i*d.c+j] = v
			}
		}
	}

	return d, nil
}

// Clone returns a deep copy of the Sparse matrix.
func (m *Sparse) Clone() *Sparse {
	cp := make(map[coord]complex128, len(m.entries))
	for k, v := range m.entries {
		cp[k] = v
	}

	return &Sparse{r: m.r, c: m.c, entries: cp}
}
