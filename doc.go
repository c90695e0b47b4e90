// Package halo is a toolkit for iterative relaxation over a dense 2D grid
// split into contiguous row blocks, one block per worker.
//
// 🚀 What is in the box?
//
//   - Partition planning: balanced row blocks with ghost-row bookkeeping
//   - Message world: in-process point-to-point and collective operations
//   - Contrast stretch: 3×3 stencil with halo exchange and global convergence
//   - Floyd–Warshall: all-pairs shortest paths with per-pivot row broadcast
//   - Work graphs: level-synchronous traversal with a shared work queue
//   - Matrix multiply: row-strip parallel C = A·B with a self-check
//
// Packages:
//
//	grid/        flat row-major buffers and double-buffer pairs
//	partition/   row-block plans and intra-worker row strips
//	comm/        ranks, Send/Recv/Sendrecv, Bcast, Allreduce, Scatterv/Gatherv
//	stencil/     distributed contrast stretching
//	apsp/        distributed Floyd–Warshall
//	workgraph/   parallel work-graph traversal
//	matmul/      row-strip parallel matrix multiplication
//	bitmap/      24-bit BMP input/output
//	edgelist/    edge-list input, distance-matrix text input/output
//	cmd/halo     command-line front end
//
// Quick ✨ example:
//
//	img, _ := bitmap.Read("in.bmp")
//	out, res, err := stencil.Stretch(ctx, img.Pixels,
//		stencil.WithSteps(75),
//		stencil.WithWorkers(4),
//	)
//
// Every distributed run is checked against a sequential reference in the
// package tests: results do not depend on the worker or thread count.
package halo
