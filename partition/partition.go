// SPDX-License-Identifier: MIT
// Package: partition
//
// Purpose:
//   - Plan the row ownership table shared by every rank of a run.
//
// Contract:
//   - Offsets are strictly increasing; Counts sum to the row total.
//   - OwnerOf is O(1) and agrees with Of for every row.
//
// Complexity:
//   - Plan: O(workers) time and space.

package partition

import (
	"errors"
	"fmt"
)

// Sentinel errors for partition planning.
var (
	// ErrInvalidWorkers is returned when the worker count is below one.
	ErrInvalidWorkers = errors.New("partition: worker count must be >= 1")

	// ErrInvalidRows is returned when the grid has no rows.
	ErrInvalidRows = errors.New("partition: total rows must be >= 1")

	// ErrInvalidPartition is returned when a worker would own zero rows.
	ErrInvalidPartition = errors.New("partition: fewer rows than workers")

	// ErrRowOutOfRange is returned by OwnerOf for rows outside the table.
	ErrRowOutOfRange = errors.New("partition: row out of range")

	// ErrBrokenCover is returned by Validate when partitions overlap, leave a
	// gap, or do not sum to the total row count.
	ErrBrokenCover = errors.New("partition: partitions do not cover rows exactly")
)

// Partition is one worker's contiguous row range.
type Partition struct {
	Owner    int // worker rank, equal to the partition's index in the table
	FirstRow int // first global row owned
	RowCount int // number of rows owned (>= 1)

	// GhostAbove/GhostBelow report whether a neighbor exists on that side of
	// the chain, i.e. whether a ghost row must be refreshed there.
	GhostAbove bool
	GhostBelow bool
}

// LastRow returns the last global row owned (inclusive).
func (p Partition) LastRow() int { return p.FirstRow + p.RowCount - 1 }

// Contains reports whether global row r belongs to p.
func (p Partition) Contains(r int) bool {
	return r >= p.FirstRow && r < p.FirstRow+p.RowCount
}

// Table is the immutable partition layout for one run.
type Table struct {
	TotalRows  int
	Base       int // rows per non-coordinator worker
	Remainder  int // extra rows prepended to worker 0
	Partitions []Partition
}

// Plan computes the partition table for totalRows over workers.
// workers == 1 yields a single partition without ghost rows.
func Plan(totalRows, workers int) (Table, error) {
	if workers < 1 {
		return Table{}, fmt.Errorf("Plan(%d,%d): %w", totalRows, workers, ErrInvalidWorkers)
	}
	if totalRows < 1 {
		return Table{}, fmt.Errorf("Plan(%d,%d): %w", totalRows, workers, ErrInvalidRows)
	}
	if totalRows < workers {
		return Table{}, fmt.Errorf("Plan(%d,%d): %w", totalRows, workers, ErrInvalidPartition)
	}

	base := totalRows / workers
	rem := totalRows % workers
	parts := make([]Partition, workers)
	for i := range parts {
		p := Partition{
			Owner:      i,
			GhostAbove: i > 0,
			GhostBelow: i < workers-1,
		}
		if i == 0 {
			p.FirstRow, p.RowCount = 0, base+rem
		} else {
			p.FirstRow, p.RowCount = rem+i*base, base
		}
		parts[i] = p
	}

	return Table{TotalRows: totalRows, Base: base, Remainder: rem, Partitions: parts}, nil
}

// Workers returns the number of partitions.
func (t Table) Workers() int { return len(t.Partitions) }

// Of returns the partition owned by rank.
func (t Table) Of(rank int) Partition { return t.Partitions[rank] }

// OwnerOf returns the rank owning global row r. It is pure arithmetic over
// the table, so every worker computes the same answer without communicating.
func (t Table) OwnerOf(r int) (int, error) {
	if r < 0 || r >= t.TotalRows {
		return 0, fmt.Errorf("OwnerOf(%d): %w", r, ErrRowOutOfRange)
	}
	first := t.Base + t.Remainder
	if r < first {
		return 0, nil
	}

	return (r - t.Remainder) / t.Base, nil
}

// Counts returns per-worker element counts for rows of the given width.
func (t Table) Counts(width int) []int {
	out := make([]int, len(t.Partitions))
	for i, p := range t.Partitions {
		out[i] = p.RowCount * width
	}

	return out
}

// Offsets returns per-worker element offsets into a row-major buffer of the
// given width.
func (t Table) Offsets(width int) []int {
	out := make([]int, len(t.Partitions))
	for i, p := range t.Partitions {
		out[i] = p.FirstRow * width
	}

	return out
}

// Validate checks that partitions are contiguous, non-overlapping, non-empty
// and cover [0, TotalRows) exactly.
func (t Table) Validate() error {
	next := 0
	for i, p := range t.Partitions {
		if p.Owner != i || p.RowCount < 1 || p.FirstRow != next {
			return fmt.Errorf("Validate: partition %d %+v: %w", i, p, ErrBrokenCover)
		}
		next += p.RowCount
	}
	if next != t.TotalRows {
		return fmt.Errorf("Validate: covered %d of %d rows: %w", next, t.TotalRows, ErrBrokenCover)
	}

	return nil
}
