// SPDX-License-Identifier: MIT
// Package: comm
//
// Purpose:
//   - Collectives built on point-to-point messages, rooted at any rank.
//
// Complexity:
//   - Bcast, Scatterv and Gatherv: size-1 messages from or to root.
//   - AllreduceSum: 2·(size-1) messages.

package comm

import "fmt"

// Bcast copies root's buf into every other rank's buf.
func Bcast[T any](c *Comm, buf []T, root int) error {
	if root < 0 || root >= c.w.size {
		return fmt.Errorf("Bcast(rank %d): root %d: %w", c.rank, root, ErrInvalidRank)
	}
	if c.rank != root {
		return Recv(c, buf, root)
	}
	for dst := 0; dst < c.w.size; dst++ {
		if dst == root {
			continue
		}
		if err := Send(c, buf, dst); err != nil {
			return err
		}
	}

	return nil
}

// ReduceSum sums v over all ranks at root. The returned total is meaningful
// only on root; other ranks get their own v back.
func ReduceSum(c *Comm, v int, root int) (int, error) {
	if root < 0 || root >= c.w.size {
		return 0, fmt.Errorf("ReduceSum(rank %d): root %d: %w", c.rank, root, ErrInvalidRank)
	}
	if c.rank != root {
		return v, Send(c, []int{v}, root)
	}

	total := v
	one := make([]int, 1)
	for src := 0; src < c.w.size; src++ {
		if src == root {
			continue
		}
		if err := Recv(c, one, src); err != nil {
			return 0, err
		}
		total += one[0]
	}

	return total, nil
}

// AllreduceSum reduces v at rank 0 and broadcasts the total back, so every
// rank returns the same global sum.
func AllreduceSum(c *Comm, v int) (int, error) {
	total, err := ReduceSum(c, v, 0)
	if err != nil {
		return 0, err
	}
	buf := []int{total}
	if err = Bcast(c, buf, 0); err != nil {
		return 0, err
	}

	return buf[0], nil
}

// Barrier returns once every rank has entered it.
func Barrier(c *Comm) error {
	_, err := AllreduceSum(c, 0)

	return err
}

// checkCounts validates a per-rank counts vector and returns the prefix offsets.
func checkCounts(c *Comm, op string, counts []int) ([]int, int, error) {
	if len(counts) != c.w.size {
		return nil, 0, fmt.Errorf("%s(rank %d): %d counts for %d ranks: %w",
			op, c.rank, len(counts), c.w.size, ErrLengthMismatch)
	}
	offsets := make([]int, len(counts))
	total := 0
	for i, n := range counts {
		if n < 0 {
			return nil, 0, fmt.Errorf("%s(rank %d): negative count %d: %w", op, c.rank, n, ErrLengthMismatch)
		}
		offsets[i] = total
		total += n
	}

	return offsets, total, nil
}

// Scatterv splits root's send buffer into consecutive segments of counts[i]
// elements and delivers segment i into rank i's recv. Only root reads send.
func Scatterv[T any](c *Comm, send []T, counts []int, recv []T, root int) error {
	const op = "Scatterv"
	if root < 0 || root >= c.w.size {
		return fmt.Errorf("%s(rank %d): root %d: %w", op, c.rank, root, ErrInvalidRank)
	}
	offsets, total, err := checkCounts(c, op, counts)
	if err != nil {
		return err
	}
	if len(recv) != counts[c.rank] {
		return fmt.Errorf("%s(rank %d): recv len %d, want %d: %w", op, c.rank, len(recv), counts[c.rank], ErrLengthMismatch)
	}
	if c.rank != root {
		return Recv(c, recv, root)
	}
	if len(send) != total {
		return fmt.Errorf("%s(rank %d): send len %d, want %d: %w", op, c.rank, len(send), total, ErrLengthMismatch)
	}
	for dst := 0; dst < c.w.size; dst++ {
		seg := send[offsets[dst] : offsets[dst]+counts[dst]]
		if dst == root {
			copy(recv, seg)
			continue
		}
		if err = Send(c, seg, dst); err != nil {
			return err
		}
	}

	return nil
}

// Gatherv collects every rank's send buffer into root's recv, segment i at
// the prefix offset of counts. Only root writes recv.
func Gatherv[T any](c *Comm, send []T, recv []T, counts []int, root int) error {
	const op = "Gatherv"
	if root < 0 || root >= c.w.size {
		return fmt.Errorf("%s(rank %d): root %d: %w", op, c.rank, root, ErrInvalidRank)
	}
	offsets, total, err := checkCounts(c, op, counts)
	if err != nil {
		return err
	}
	if len(send) != counts[c.rank] {
		return fmt.Errorf("%s(rank %d): send len %d, want %d: %w", op, c.rank, len(send), counts[c.rank], ErrLengthMismatch)
	}
	if c.rank != root {
		return Send(c, send, root)
	}
	if len(recv) != total {
		return fmt.Errorf("%s(rank %d): recv len %d, want %d: %w", op, c.rank, len(recv), total, ErrLengthMismatch)
	}
	for src := 0; src < c.w.size; src++ {
		seg := recv[offsets[src] : offsets[src]+counts[src]]
		if src == root {
			copy(seg, send)
			continue
		}
		if err = Recv(c, seg, src); err != nil {
			return err
		}
	}

	return nil
}
