// SPDX-License-Identifier: MIT

// Package grid - contiguous row-major storage & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose rows and row blocks as sub-slices of the single backing buffer so a
//     worker can hand a whole block to the transport without packing.

package grid

import (
	"fmt"
	"strings"
)

// Elem enumerates the cell types the engines work with: bytes for image
// channels and signed integers for distance matrices.
type Elem interface {
	~uint8 | ~int32 | ~int64 | ~float64
}

// Grid is a concrete row-major matrix of T.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Grid[T Elem] struct {
	r, c int
	data []T
}

// New creates an r×c zero grid.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity: Time O(r*c), Space O(r*c).
func New[T Elem](rows, cols int) (*Grid[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}

	// make() zero-fills the buffer deterministically.
	return &Grid[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// FromSlice creates an r×c grid holding a copy of data (row-major).
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//   - ErrDimensionMismatch when len(data) != rows*cols.
func FromSlice[T Elem](rows, cols int, data []T) (*Grid[T], error) {
	g, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("FromSlice: len %d for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch)
	}
	copy(g.data, data)

	return g, nil
}

// MustNew is New for callers whose dimensions are already validated.
// It panics on invalid dimensions (programmer error).
func MustNew[T Elem](rows, cols int) *Grid[T] {
	g, err := New[T](rows, cols)
	if err != nil {
		panic(err)
	}

	return g
}

// Rows returns the number of rows.
func (g *Grid[T]) Rows() int { return g.r }

// Cols returns the number of columns.
func (g *Grid[T]) Cols() int { return g.c }

// Shape returns (rows, cols).
func (g *Grid[T]) Shape() (rows, cols int) { return g.r, g.c }

// Len returns rows*cols.
func (g *Grid[T]) Len() int { return len(g.data) }

// Data exposes the backing row-major buffer. Mutations are visible in g.
func (g *Grid[T]) Data() []T { return g.data }

// indexOf validates (row,col) and returns the flat offset.
func (g *Grid[T]) indexOf(row, col int) (int, bool) {
	if row < 0 || row >= g.r || col < 0 || col >= g.c {
		return 0, false
	}

	return row*g.c + col, true
}

// At returns the element at (row, col).
// Errors: ErrOutOfRange.
func (g *Grid[T]) At(row, col int) (T, error) {
	idx, ok := g.indexOf(row, col)
	if !ok {
		var zero T
		return zero, gridErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return g.data[idx], nil
}

// Set stores v at (row, col).
// Errors: ErrOutOfRange.
func (g *Grid[T]) Set(row, col int, v T) error {
	idx, ok := g.indexOf(row, col)
	if !ok {
		return gridErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	g.data[idx] = v

	return nil
}

// Row returns row i as a sub-slice of the backing buffer (no copy).
// Errors: ErrOutOfRange.
func (g *Grid[T]) Row(i int) ([]T, error) {
	if i < 0 || i >= g.r {
		return nil, gridErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	base := i * g.c

	return g.data[base : base+g.c : base+g.c], nil
}

// RowBlock returns rows [lo, hi) as ONE contiguous sub-slice (no copy).
// An empty range (lo == hi) is legal and yields an empty slice.
// Errors: ErrOutOfRange.
func (g *Grid[T]) RowBlock(lo, hi int) ([]T, error) {
	if lo < 0 || hi > g.r || lo > hi {
		return nil, gridErrorf(ctxRowBlock, lo, hi, ErrOutOfRange)
	}

	return g.data[lo*g.c : hi*g.c : hi*g.c], nil
}

// CopyFrom bulk-copies src into g. Shapes must match exactly.
// Errors: ErrNilGrid, ErrDimensionMismatch.
func (g *Grid[T]) CopyFrom(src *Grid[T]) error {
	if src == nil {
		return gridErrorf(ctxCopyFrom, 0, 0, ErrNilGrid)
	}
	if g.r != src.r || g.c != src.c {
		return gridErrorf(ctxCopyFrom, src.r, src.c, ErrDimensionMismatch)
	}
	copy(g.data, src.data)

	return nil
}

// Clone returns a deep copy with an independent buffer.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)

	return &Grid[T]{r: g.r, c: g.c, data: data}
}

// Equal reports whether o has the same shape and identical elements.
func (g *Grid[T]) Equal(o *Grid[T]) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.r != o.r || g.c != o.c {
		return false
	}
	for i := range g.data {
		if g.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// Fill sets every element to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Release drops the backing buffer. The grid becomes 0×0; any slices obtained
// earlier keep the old memory alive until they are dropped too.
func (g *Grid[T]) Release() {
	g.r, g.c, g.data = 0, 0, nil
}

// String renders the grid row by row, e.g. "[1, 2]\n[3, 4]\n".
func (g *Grid[T]) String() string {
	var sb strings.Builder
	for i := 0; i < g.r; i++ {
		sb.WriteString("[")
		for j := 0; j < g.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprint(&sb, g.data[i*g.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
