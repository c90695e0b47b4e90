// SPDX-License-Identifier: MIT
// Package grid: sentinel error set.
//
// Callers MUST branch with errors.Is; public accessors return these instead of
// panicking. Context is attached with gridErrorf at the detection site.

package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested grid dimensions are non-positive.
	ErrInvalidDimensions = errors.New("grid: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("grid: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between two grids or
	// between a grid and a flat buffer.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")

	// ErrNilGrid indicates that a nil *Grid was used as receiver or argument.
	ErrNilGrid = errors.New("grid: nil grid")
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxRow      = "Row"
	ctxRowBlock = "RowBlock"
	ctxCopyFrom = "CopyFrom"
)

// gridErrorf wraps err with a uniform Grid context and callsite coordinates.
func gridErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Grid.%s(%d,%d): %w", method, row, col, err)
}
