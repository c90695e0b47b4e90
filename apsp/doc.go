// SPDX-License-Identifier: MIT

// Package apsp computes dense all-pairs shortest paths (Floyd–Warshall) over
// a distance matrix partitioned by contiguous row ranges.
//
// Contract:
//
//   - Distances are int64; Infinity (math.MaxInt64) means "no path".
//   - The diagonal is 0 and stays 0.
//   - Edge weights added through AddEdge lie in [0, MaxWeight]. Matrices
//     built elsewhere may hold any finite entry in [0, Infinity): relaxation
//     adds with saturation, so a sum past Infinity counts as "no path" and
//     never wraps negative.
//
// Protocol:
//
//   - For k = 0..N-1 in ascending order, the unique worker owning row k
//     copies it into a scratch pivot row and broadcasts it; every worker then
//     relaxes its own rows in place against that pivot row.
//   - The order of k is part of the algorithm: step k must see the results
//     of every earlier pivot. There is no early exit.
//
// Determinism:
//
//   - Loop order is fixed (k → i → j) and relaxation is strict (<), so the
//     distributed result is identical to Sequential for any worker count.
//
// Complexity: Time O(n³/workers) per worker + O(n²) broadcast volume per worker.
package apsp
