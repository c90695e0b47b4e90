// SPDX-License-Identifier: MIT
// Package: comm
//
// Purpose:
//   - Hold the per-pair FIFO mailboxes of a world and run one goroutine per rank.
//
// Contract:
//   - Messages between an ordered pair arrive in send order.
//   - The first rank error cancels every other rank; Run returns it.

package comm

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// NullPeer is the rank of a missing neighbor. Sending to or receiving from it
// completes immediately without moving data.
const NullPeer = -1

// DefaultLinkCapacity is the number of messages a link buffers before Send blocks.
const DefaultLinkCapacity = 4

// Option configures a World.
type Option func(*worldOptions)

type worldOptions struct {
	capacity int
	err      error
}

// WithLinkCapacity sets how many in-flight messages each link buffers.
// Zero makes links synchronous (rendezvous); negative values are rejected.
func WithLinkCapacity(n int) Option {
	return func(o *worldOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: link capacity cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.capacity = n
	}
}

// World is a fixed set of ranks joined by one FIFO link per ordered pair.
type World struct {
	ctx   context.Context
	size  int
	links [][]chan any // links[src][dst]

	messages atomic.Int64
	elements atomic.Int64
}

// NewWorld builds a world of size ranks bound to ctx. Cancelling ctx aborts
// every blocked operation.
func NewWorld(ctx context.Context, size int, opts ...Option) (*World, error) {
	if size < 1 {
		return nil, fmt.Errorf("NewWorld(%d): %w", size, ErrInvalidSize)
	}
	o := worldOptions{capacity: DefaultLinkCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	links := make([][]chan any, size)
	for src := range links {
		links[src] = make([]chan any, size)
		for dst := range links[src] {
			links[src][dst] = make(chan any, o.capacity)
		}
	}

	return &World{ctx: ctx, size: size, links: links}, nil
}

// Size returns the number of ranks.
func (w *World) Size() int { return w.size }

// Messages returns how many messages have been delivered so far.
func (w *World) Messages() int64 { return w.messages.Load() }

// Elements returns how many payload elements have been delivered so far.
func (w *World) Elements() int64 { return w.elements.Load() }

// Comm returns the endpoint of rank.
func (w *World) Comm(rank int) (*Comm, error) {
	if rank < 0 || rank >= w.size {
		return nil, fmt.Errorf("World.Comm(%d): %w", rank, ErrInvalidRank)
	}

	return &Comm{w: w, rank: rank}, nil
}

// Comm is one rank's view of the world.
type Comm struct {
	w    *World
	rank int
}

// Rank returns this endpoint's rank.
func (c *Comm) Rank() int { return c.rank }

// Size returns the world size.
func (c *Comm) Size() int { return c.w.size }

// Traffic returns the world's delivered message and element counts so far.
// Once a rank has received a message sent after some other delivery, that
// delivery is included.
func (c *Comm) Traffic() (messages, elements int64) {
	return c.w.Messages(), c.w.Elements()
}

// Prev returns the lower chain neighbor or NullPeer for rank 0.
func (c *Comm) Prev() int {
	if c.rank == 0 {
		return NullPeer
	}

	return c.rank - 1
}

// Next returns the higher chain neighbor or NullPeer for the last rank.
func (c *Comm) Next() int {
	if c.rank == c.w.size-1 {
		return NullPeer
	}

	return c.rank + 1
}

// IsRoot reports whether this rank is the coordinator (rank 0).
func (c *Comm) IsRoot() bool { return c.rank == 0 }

// checkPeer validates a peer rank; NullPeer is always legal.
func (c *Comm) checkPeer(op string, peer int) error {
	if peer == NullPeer {
		return nil
	}
	if peer < 0 || peer >= c.w.size {
		return fmt.Errorf("%s(rank %d): peer %d: %w", op, c.rank, peer, ErrInvalidRank)
	}

	return nil
}

// Run executes fn once per rank, each in its own goroutine, over a fresh
// world of size ranks. The first non-nil error cancels the world so blocked
// peers return ErrAborted; Run returns that first error.
func Run(ctx context.Context, size int, fn func(ctx context.Context, c *Comm) error, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, gctx := errgroup.WithContext(ctx)
	w, err := NewWorld(gctx, size, opts...)
	if err != nil {
		return err
	}
	for rank := 0; rank < size; rank++ {
		c := &Comm{w: w, rank: rank}
		g.Go(func() error {
			return fn(gctx, c)
		})
	}

	return g.Wait()
}
