// SPDX-License-Identifier: MIT
// Package: comm
//
// Purpose:
//   - Point-to-point Send, Recv and Sendrecv.
//
// Contract:
//   - Payloads are copied on send; receivers never alias sender memory.
//   - Sendrecv cannot deadlock on a symmetric exchange.
//   - NullPeer turns either half into a no-op.

package comm

import "fmt"

// clonePayload copies buf so the receiver never aliases sender memory.
func clonePayload[T any](buf []T) []T {
	out := make([]T, len(buf))
	copy(out, buf)

	return out
}

// deliver copies a received message into buf, enforcing type and length.
func deliver[T any](c *Comm, op string, src int, msg any, buf []T) error {
	payload, ok := msg.([]T)
	if !ok {
		return fmt.Errorf("%s(rank %d): from %d got %T: %w", op, c.rank, src, msg, ErrTypeMismatch)
	}
	if len(payload) != len(buf) {
		return fmt.Errorf("%s(rank %d): from %d got %d elements, want %d: %w",
			op, c.rank, src, len(payload), len(buf), ErrLengthMismatch)
	}
	copy(buf, payload)
	c.w.messages.Add(1)
	c.w.elements.Add(int64(len(payload)))

	return nil
}

// Send copies buf to dest. It blocks only while the link is full.
func Send[T any](c *Comm, buf []T, dest int) error {
	const op = "Send"
	if err := c.checkPeer(op, dest); err != nil {
		return err
	}
	if dest == NullPeer {
		return nil
	}
	select {
	case c.w.links[c.rank][dest] <- clonePayload(buf):
		return nil
	case <-c.w.ctx.Done():
		return aborted(c.w.ctx, op, c.rank)
	}
}

// Recv fills buf with the next message from src.
func Recv[T any](c *Comm, buf []T, src int) error {
	const op = "Recv"
	if err := c.checkPeer(op, src); err != nil {
		return err
	}
	if src == NullPeer {
		return nil
	}
	select {
	case msg := <-c.w.links[src][c.rank]:
		return deliver(c, op, src, msg, buf)
	case <-c.w.ctx.Done():
		return aborted(c.w.ctx, op, c.rank)
	}
}

// Sendrecv sends send to dest while receiving from src into recv. Both halves
// progress simultaneously, so two neighbors exchanging symmetrically can never
// deadlock even over synchronous links. Either peer may be NullPeer.
func Sendrecv[T any](c *Comm, send []T, dest int, recv []T, src int) error {
	const op = "Sendrecv"
	if err := c.checkPeer(op, dest); err != nil {
		return err
	}
	if err := c.checkPeer(op, src); err != nil {
		return err
	}

	var (
		sendCh chan<- any
		recvCh <-chan any
		out    any
	)
	if dest != NullPeer {
		sendCh = c.w.links[c.rank][dest]
		out = clonePayload(send)
	}
	if src != NullPeer {
		recvCh = c.w.links[src][c.rank]
	}

	// A nil channel never becomes ready, so a finished half drops out of the select.
	for sendCh != nil || recvCh != nil {
		select {
		case sendCh <- out:
			sendCh = nil
		case msg := <-recvCh:
			if err := deliver(c, op, src, msg, recv); err != nil {
				return err
			}
			recvCh = nil
		case <-c.w.ctx.Done():
			return aborted(c.w.ctx, op, c.rank)
		}
	}

	return nil
}
