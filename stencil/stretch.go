// SPDX-License-Identifier: MIT
// Package: stencil
//
// Purpose:
//   - Drive one contrast-stretch run: scatter, ghost exchange, sweep,
//     convergence vote, gather.
//
// Contract:
//   - Output is identical to Sequential for every worker and thread count.
//   - Every rank sees the same global change count, so all stop on the
//     same step.
//
// Complexity:
//   - Time O(steps·rows·cols / (workers·threads)) plus 4 ghost messages
//     per inner boundary per step.

package stencil

import (
	"context"
	"fmt"

	"github.com/katalvlaran/halo/comm"
	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/partition"
)

const opStretch = "Stretch"

// Stretch runs contrast stretching over img, a rows×(cols*channels) byte
// grid, and returns a new grid with the result. img is not modified.
//
// The loop stops after the step budget or as soon as one step changes no
// cell anywhere in the image, whichever comes first.
func Stretch(ctx context.Context, img *grid.Grid[uint8], opts ...Option) (*grid.Grid[uint8], Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, Result{}, fmt.Errorf("%s: %w", opStretch, o.err)
	}
	if img == nil {
		return nil, Result{}, fmt.Errorf("%s: %w", opStretch, ErrNilImage)
	}
	if img.Cols()%o.Channels != 0 {
		return nil, Result{}, fmt.Errorf("%s: width %d, channels %d: %w", opStretch, img.Cols(), o.Channels, ErrChannelMismatch)
	}
	tbl, err := partition.Plan(img.Rows(), o.Workers)
	if err != nil {
		return nil, Result{}, fmt.Errorf("%s: %w", opStretch, err)
	}

	out := img.Clone()
	if o.Steps == 0 {
		return out, Result{}, nil
	}

	o.Logger.Info("contrast stretch",
		"rows", img.Rows(), "cols", img.Cols()/o.Channels, "steps", o.Steps,
		"workers", o.Workers, "threads", o.Threads)

	var res Result
	err = comm.Run(ctx, o.Workers, func(_ context.Context, c *comm.Comm) error {
		w, err := newWorker(c, tbl, img.Cols(), &o)
		if err != nil {
			return err
		}
		defer w.sweeper.Close()

		if err = w.scatter(out); err != nil {
			return err
		}
		r, err := w.loop()
		if err != nil {
			return err
		}
		if err = w.gather(out); err != nil {
			return err
		}
		if c.IsRoot() {
			// every other rank's last send was this gather, so the counters are final
			r.Messages, r.Elements = c.Traffic()
			res = r
		}

		return nil
	})
	if err != nil {
		return nil, Result{}, fmt.Errorf("%s: %w", opStretch, err)
	}

	return out, res, nil
}

// worker is one rank's mutable state: its partition, a double buffer sized
// for the interior rows plus one ghost row above and below, and the range of
// local rows it actually recomputes.
type worker struct {
	c     *comm.Comm
	tbl   partition.Table
	part  partition.Partition
	bufs  *grid.Pair[uint8]
	width int
	opts  *Options

	sweeper *partition.Sweeper

	lo, hi int // local rows to recompute, [lo, hi)
}

func newWorker(c *comm.Comm, tbl partition.Table, width int, o *Options) (*worker, error) {
	part := tbl.Of(c.Rank())
	bufs, err := grid.NewPair[uint8](part.RowCount+2, width)
	if err != nil {
		return nil, err
	}

	// Global rows 0 and TotalRows-1 are boundary rows and are never recomputed.
	gLo := max(part.FirstRow, 1)
	gHi := min(part.FirstRow+part.RowCount, tbl.TotalRows-1)
	w := &worker{c: c, tbl: tbl, part: part, bufs: bufs, width: width, opts: o,
		sweeper: partition.NewSweeper(o.Threads)}
	w.lo, w.hi = gLo-part.FirstRow+1, gHi-part.FirstRow+1
	if w.hi < w.lo {
		w.hi = w.lo
	}

	return w, nil
}

// interior returns the owned rows of g (local rows 1..RowCount) as one slice.
func (w *worker) interior(g *grid.Grid[uint8]) []uint8 {
	blk, _ := g.RowBlock(1, w.part.RowCount+1)

	return blk
}

// scatter distributes the coordinator's image so every worker holds its
// interior rows, then mirrors them into the second buffer.
func (w *worker) scatter(img *grid.Grid[uint8]) error {
	var send []uint8
	if w.c.IsRoot() {
		send = img.Data()
	}
	if err := comm.Scatterv(w.c, send, w.tbl.Counts(w.width), w.interior(w.bufs.Current()), 0); err != nil {
		return err
	}
	w.bufs.Sync()

	return nil
}

// gather reassembles the finalized interior rows at the coordinator.
func (w *worker) gather(img *grid.Grid[uint8]) error {
	var recv []uint8
	if w.c.IsRoot() {
		recv = img.Data()
	}

	return comm.Gatherv(w.c, w.interior(w.bufs.Current()), recv, w.tbl.Counts(w.width), 0)
}

// exchange refreshes both ghost rows of the current buffer. Round one shifts
// last rows down the chain into top ghosts; round two shifts first rows up
// into bottom ghosts. Chain ends pair with comm.NullPeer.
func (w *worker) exchange() error {
	cur := w.bufs.Current()
	n := w.part.RowCount
	first, _ := cur.Row(1)
	last, _ := cur.Row(n)
	top, _ := cur.Row(0)
	bottom, _ := cur.Row(n + 1)

	if err := comm.Sendrecv(w.c, last, w.c.Next(), top, w.c.Prev()); err != nil {
		return fmt.Errorf("ghost down shift: %w", err)
	}
	if err := comm.Sendrecv(w.c, first, w.c.Prev(), bottom, w.c.Next()); err != nil {
		return fmt.Errorf("ghost up shift: %w", err)
	}

	return nil
}

// sweep recomputes local rows [lo, hi) from Current into Next.
func (w *worker) sweep() int {
	cur, next := w.bufs.Current(), w.bufs.Next()
	ch, step := w.opts.Channels, w.opts.StepBy

	return w.sweeper.Sweep(w.lo, w.hi, func(lo, hi int) int {
		changes := 0
		for l := lo; l < hi; l++ {
			above, _ := cur.Row(l - 1)
			row, _ := cur.Row(l)
			below, _ := cur.Row(l + 1)
			out, _ := next.Row(l)
			changes += stretchRow(out, above, row, below, ch, step)
		}
		return changes
	})
}

// loop runs exchange -> sweep -> global reduction until the budget is spent
// or a step changes nothing. Every rank returns the same step count.
func (w *worker) loop() (Result, error) {
	var res Result
	for step := 1; step <= w.opts.Steps; step++ {
		if err := w.exchange(); err != nil {
			return res, err
		}
		local := w.sweep()
		global, err := comm.AllreduceSum(w.c, local)
		if err != nil {
			return res, fmt.Errorf("convergence at step %d: %w", step, err)
		}
		w.bufs.Swap()

		res.Steps = step
		res.Changes = append(res.Changes, global)
		if w.c.IsRoot() {
			w.opts.Logger.Debug("step done", "step", step, "changes", global)
			w.opts.OnStep(step, global)
		}
		if global == 0 {
			res.Converged = true
			break
		}
	}

	return res, nil
}
