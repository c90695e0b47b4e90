// SPDX-License-Identifier: MIT
// Package: workgraph
//
// Purpose:
//   - Level-synchronous traversal of a graph whose edges appear only after
//     a vertex's work is done.
//
// Contract:
//   - Each reachable vertex is worked exactly once.
//   - Order is deterministic: levels ascend, vertices sorted inside a level.

package workgraph

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// walker encapsulates traversal state.
type walker struct {
	ctx     context.Context
	graph   Graph
	opts    Options
	visited *visitedSet
	res     *Result
}

// Traverse processes every vertex reachable from g.Start() exactly once.
// Cancellation is checked between vertices. Returns ErrGraphNil,
// ErrOptionViolation, the context error, or the first OnVisit error.
func Traverse(ctx context.Context, g Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w := &walker{
		ctx:     ctx,
		graph:   g,
		opts:    o,
		visited: newVisitedSet(o.Shards),
		res:     &Result{Depth: make(map[int]int)},
	}
	start := g.Start()
	w.visited.claim(start)

	return w.res, w.loop([]int{start})
}

// loop runs one level at a time until the frontier is empty.
func (w *walker) loop(frontier []int) error {
	for depth := 0; len(frontier) > 0; depth++ {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		for _, v := range frontier {
			w.res.Order = append(w.res.Order, v)
			w.res.Depth[v] = depth
		}
		w.res.Visited += len(frontier)
		w.res.Levels++

		next, err := w.level(frontier, depth)
		if err != nil {
			return err
		}
		frontier = next
	}

	return nil
}

// level drains frontier through the worker pool and returns the next
// frontier, sorted for a deterministic Order.
func (w *walker) level(frontier []int, depth int) ([]int, error) {
	queue := make(chan int, len(frontier))
	for _, v := range frontier {
		queue <- v
	}
	close(queue)

	discover := w.opts.MaxDepth == 0 || depth+1 <= w.opts.MaxDepth
	var (
		mu   sync.Mutex
		next []int
	)
	g, ctx := errgroup.WithContext(w.ctx)
	for i := 0; i < min(w.opts.Workers, len(frontier)); i++ {
		g.Go(func() error {
			var local []int
			if err := w.drain(ctx, queue, depth, discover, &local); err != nil {
				return err
			}
			mu.Lock()
			next = append(next, local...)
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(next)

	return next, nil
}

// drain pulls vertices until the queue is empty, collecting claimed
// neighbors into local.
func (w *walker) drain(ctx context.Context, queue <-chan int, depth int, discover bool, local *[]int) error {
	for v := range queue {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.opts.OnVisit(v, depth); err != nil {
			return fmt.Errorf("workgraph: OnVisit error at %d: %w", v, err)
		}
		neighbors := w.graph.Work(v)
		if !discover {
			continue
		}
		for _, nb := range neighbors {
			if w.visited.claim(nb) {
				*local = append(*local, nb)
			}
		}
	}

	return nil
}
