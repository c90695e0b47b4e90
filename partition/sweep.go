// SPDX-License-Identifier: MIT
// Package: partition
//
// Purpose:
//   - Apply the Plan policy inside one worker: split its rows into strips.
//   - Run the strips on a persistent worker pool owned by the worker and
//     reused across steps and pivots.
//
// Contract:
//   - Strips never overlap and cover [lo, hi) exactly; fn may write inside
//     its own strip without locking.
//   - A Sweeper belongs to one goroutine; Sweep calls must not overlap.

package partition

import (
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// Range is a half-open row interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Strips splits [lo, hi) into at most n contiguous strips using the same
// policy as Plan (remainder on the first strip). An empty interval yields nil.
func Strips(lo, hi, n int) []Range {
	rows := hi - lo
	if rows < 1 || n < 1 {
		return nil
	}
	if n > rows {
		n = rows
	}
	tbl, _ := Plan(rows, n) // rows >= n >= 1 here
	out := make([]Range, n)
	for i, p := range tbl.Partitions {
		out[i] = Range{Lo: lo + p.FirstRow, Hi: lo + p.FirstRow + p.RowCount}
	}

	return out
}

// Sweeper runs row strips of one worker on a persistent pool.
type Sweeper struct {
	threads int
	pool    *workerpool.Pool

	// strips and per-strip results for the last [lo, hi) seen
	lo, hi int
	strips []Range
	sums   []int
}

// NewSweeper starts a pool of threads goroutines. threads <= 1 starts no pool
// and Sweep runs inline. Call Close when the worker is done.
func NewSweeper(threads int) *Sweeper {
	s := &Sweeper{threads: max(threads, 1)}
	if s.threads > 1 {
		s.pool = workerpool.New(s.threads)
	}

	return s
}

// Threads returns the strip count used for wide intervals.
func (s *Sweeper) Threads() int { return s.threads }

// Sweep runs fn over [lo, hi) split into at most Threads() strips and returns
// the sum of fn's results. Each strip's result lands in its own slot, so no
// atomics are needed for the sum.
//
// Complexity: O(strips) bookkeeping per call; strips are recomputed only when
// [lo, hi) changes.
func (s *Sweeper) Sweep(lo, hi int, fn func(lo, hi int) int) int {
	if hi <= lo {
		return 0
	}
	if s.pool == nil || hi-lo == 1 {
		return fn(lo, hi)
	}
	if s.strips == nil || lo != s.lo || hi != s.hi {
		s.lo, s.hi = lo, hi
		s.strips = Strips(lo, hi, s.threads)
		s.sums = make([]int, len(s.strips))
	}

	strips, sums := s.strips, s.sums
	s.pool.ParallelFor(len(strips), func(start, end int) {
		for i := start; i < end; i++ {
			sums[i] = fn(strips[i].Lo, strips[i].Hi)
		}
	})

	total := 0
	for _, v := range sums {
		total += v
	}

	return total
}

// Close stops the pool. Later Sweep calls run inline.
func (s *Sweeper) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}
