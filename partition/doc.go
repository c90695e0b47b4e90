// SPDX-License-Identifier: MIT

// Package partition computes the static row-range layout used by every
// distributed engine in halo.
//
// Policy (fixed, deterministic):
//
//	base      = totalRows / workers
//	remainder = totalRows % workers
//	worker 0  : rows [0, base+remainder)
//	worker i>0: rows [remainder + i*base, remainder + (i+1)*base)
//
// The remainder is always prepended to the coordinator's own range; it is
// never spread over other workers. Workers are ranked 0..N-1 in row order and
// form a linear chain: worker i's neighbors are i-1 and i+1.
//
// Errors:
//
//   - ErrInvalidWorkers:   workers < 1.
//   - ErrInvalidRows:      totalRows < 1.
//   - ErrInvalidPartition: totalRows < workers (some worker would own zero rows).
//   - ErrRowOutOfRange:    OwnerOf called with a row outside [0, totalRows).
//
// Complexity: Plan O(workers); OwnerOf O(1); Validate O(workers).
package partition
