// SPDX-License-Identifier: MIT

package grid

import "fmt"

// Pair is a double buffer: two owned same-shape grids and a flag naming the
// current one. Swap flips the flag; nothing is copied or re-owned.
type Pair[T Elem] struct {
	bufs [2]*Grid[T]
	cur  int
}

// NewPair allocates two rows×cols grids.
// Errors: ErrInvalidDimensions.
func NewPair[T Elem](rows, cols int) (*Pair[T], error) {
	a, err := New[T](rows, cols)
	if err != nil {
		return nil, fmt.Errorf("NewPair: %w", err)
	}

	return &Pair[T]{bufs: [2]*Grid[T]{a, MustNew[T](rows, cols)}}, nil
}

// Current returns the grid holding the latest finalized state.
func (p *Pair[T]) Current() *Grid[T] { return p.bufs[p.cur] }

// Next returns the grid the next step writes into.
func (p *Pair[T]) Next() *Grid[T] { return p.bufs[1-p.cur] }

// Swap makes Next the Current grid.
func (p *Pair[T]) Swap() { p.cur = 1 - p.cur }

// Sync copies Current into Next so cells a step never writes stay identical
// in both buffers.
func (p *Pair[T]) Sync() {
	copy(p.bufs[1-p.cur].data, p.bufs[p.cur].data)
}
