// SPDX-License-Identifier: MIT
// Package: apsp
//
// Purpose:
//   - Row-partitioned Floyd–Warshall with one pivot-row broadcast per k.
//
// Contract:
//   - Pivots are processed in ascending order; the owner of row k broadcasts.
//   - Result equals Sequential for every worker and thread count.
//
// Complexity:
//   - Time O(n³ / (workers·threads)); n broadcasts of n entries each.
//   - Space O(n²/workers + n) per rank.

package apsp

import (
	"context"
	"fmt"

	"github.com/katalvlaran/halo/comm"
	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/partition"
)

// Operation name constants for unified error wrapping.
const (
	opFloydWarshall = "FloydWarshall"
	opSequential    = "Sequential"
)

// relaxRows relaxes rows [lo, hi) of a row-major block of width n against the
// pivot row of vertex k. kCol is the column of k inside the block (always k:
// blocks hold full rows). It returns the number of improved cells.
//
// Rows are updated in place: the pivot row is a separate copy, so the only
// cells a row reads besides itself are its own d[i][k] (never improved at
// step k, since d[k][k] == 0) and the pivot.
//
// The sum saturates: a candidate that would exceed Infinity is no path, so
// finite entries anywhere in [0, Infinity) never wrap to negative values.
func relaxRows(block []int64, n, lo, hi int, pivot []int64, k int) int {
	var (
		i, j, base int
		ik, kj     int64
		cand       int64
		improved   int
	)
	for i = lo; i < hi; i++ {
		base = i * n
		ik = block[base+k]
		if ik == Infinity {
			continue
		}
		for j = 0; j < n; j++ {
			kj = pivot[j]
			if kj == Infinity || kj > Infinity-ik {
				continue
			}
			cand = ik + kj
			if cand < block[base+j] {
				block[base+j] = cand
				improved++
			}
		}
	}

	return improved
}

// Sequential runs the classical triple loop in place on dist.
func Sequential(dist *grid.Grid[int64]) error {
	if err := Validate(dist); err != nil {
		return fmt.Errorf("%s: %w", opSequential, err)
	}
	n := dist.Rows()
	data := dist.Data()
	pivot := make([]int64, n)
	for k := 0; k < n; k++ {
		copy(pivot, data[k*n:(k+1)*n])
		relaxRows(data, n, 0, n, pivot, k)
	}

	return nil
}

// FloydWarshall computes all-pairs shortest paths over dist and returns a new
// matrix; dist is not modified. Rows are partitioned over the configured
// workers; each pivot row is broadcast by its owner in ascending order.
func FloydWarshall(ctx context.Context, dist *grid.Grid[int64], opts ...Option) (*grid.Grid[int64], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("%s: %w", opFloydWarshall, o.err)
	}
	if err := Validate(dist); err != nil {
		return nil, fmt.Errorf("%s: %w", opFloydWarshall, err)
	}
	n := dist.Rows()
	tbl, err := partition.Plan(n, o.Workers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFloydWarshall, err)
	}

	o.Logger.Info("floyd-warshall", "vertices", n, "workers", o.Workers, "threads", o.Threads)

	out := dist.Clone()
	counts := tbl.Counts(n)
	err = comm.Run(ctx, o.Workers, func(_ context.Context, c *comm.Comm) error {
		part := tbl.Of(c.Rank())
		local, err := grid.New[int64](part.RowCount, n)
		if err != nil {
			return err
		}

		var full []int64
		if c.IsRoot() {
			full = out.Data()
		}
		if err = comm.Scatterv(c, full, counts, local.Data(), 0); err != nil {
			return err
		}

		if err = relaxAll(c, tbl, part, local, &o); err != nil {
			return err
		}

		if err = comm.Gatherv(c, local.Data(), full, counts, 0); err != nil {
			return err
		}
		if c.IsRoot() {
			msgs, elems := c.Traffic()
			o.Logger.Info("floyd-warshall traffic", "messages", msgs, "elements", elems)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFloydWarshall, err)
	}

	return out, nil
}

// relaxAll is one worker's pivot loop.
func relaxAll(c *comm.Comm, tbl partition.Table, part partition.Partition, local *grid.Grid[int64], o *Options) error {
	n := local.Cols()
	pivot := make([]int64, n)
	data := local.Data()
	sweeper := partition.NewSweeper(o.Threads)
	defer sweeper.Close()
	for k := 0; k < n; k++ {
		owner, err := tbl.OwnerOf(k)
		if err != nil {
			return err
		}
		if owner == c.Rank() {
			row, _ := local.Row(k - part.FirstRow)
			copy(pivot, row)
		}
		if err = comm.Bcast(c, pivot, owner); err != nil {
			return fmt.Errorf("pivot %d: %w", k, err)
		}

		improved := sweeper.Sweep(0, part.RowCount, func(lo, hi int) int {
			return relaxRows(data, n, lo, hi, pivot, k)
		})

		if c.IsRoot() {
			if o.ProgressEvery > 0 && k%o.ProgressEvery == 0 {
				o.Logger.Info("pivot", "k", k, "of", n)
			}
			o.OnPivot(k)
		}
		o.Logger.Debug("relaxed", "rank", c.Rank(), "k", k, "improved", improved)
	}

	return nil
}
