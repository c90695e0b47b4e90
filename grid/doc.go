// SPDX-License-Identifier: MIT

// Package grid is the flat-matrix store shared by every engine in halo.
//
// What:
//
//   - Grid[T] owns a rows×cols element buffer as ONE contiguous allocation.
//   - Rows are addressed by offset arithmetic (offset = row*cols + col); no row
//     is ever allocated independently, so a block of consecutive rows is a
//     single slice and can be transferred in one message.
//   - Pair[T] holds two same-shape grids plus a flag selecting the "current"
//     one; Swap flips the flag (double buffering without ownership transfer).
//
// Errors:
//
//   - ErrInvalidDimensions: rows<=0 or cols<=0 at construction.
//   - ErrOutOfRange:        At/Set/Row outside the grid.
//   - ErrDimensionMismatch: shape disagreement in CopyFrom/FromSlice/NewPair.
//   - ErrNilGrid:           nil receiver or argument.
//
// Complexity quicksheet:
//
//   - New: O(r*c); At/Set/Row/RowBlock: O(1); CopyFrom/Clone/Equal: O(r*c); Swap: O(1).
package grid
