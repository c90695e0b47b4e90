// SPDX-License-Identifier: MIT

// Package comm is an in-process message-passing world for cooperating
// workers. Workers share no memory: every payload is copied on send, and
// each ordered (src, dst) pair of ranks owns one FIFO link.
//
// What:
//
//   - Point-to-point: Send, Recv, and Sendrecv (simultaneous exchange).
//   - Collectives: Bcast, ReduceSum, AllreduceSum, Scatterv, Gatherv, Barrier.
//   - Run spawns one goroutine per rank under an errgroup; the first error
//     cancels the world and unblocks every peer with ErrAborted.
//
// Ordering contract:
//
//   - Messages on one link are delivered in send order.
//   - Collectives match by program order, so every rank MUST call the same
//     collectives in the same sequence (the MPI rule).
//   - NullPeer as a destination or source turns that half of an operation
//     into a no-op; chain ends use it for their missing neighbor.
//
// Errors:
//
//   - ErrInvalidSize:    world size < 1.
//   - ErrInvalidRank:    rank outside [0, size) and not NullPeer.
//   - ErrLengthMismatch: received payload length differs from the receive buffer.
//   - ErrTypeMismatch:   received payload element type differs from the receive buffer.
//   - ErrAborted:        the world context was cancelled while blocked.
package comm
