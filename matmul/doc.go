// SPDX-License-Identifier: MIT

// Package matmul multiplies dense float64 matrices with row-strip
// parallelism inside a single process.
//
// What:
//
//   - Multiply computes C = A·B. Rows of C are split into contiguous strips
//     (partition.Strips policy) and each strip runs on a persistent pool.
//   - Sequential is the single-goroutine reference with the same loop order
//     (i → k → j), so both return bit-identical results.
//   - Fill and Check reproduce a self-verifying workload: A[r][c] = r+1,
//     B[r][c] = c+1, whose product has closed-form corners.
//
// Errors:
//
//   - ErrNilMatrix:          nil operand.
//   - grid.ErrDimensionMismatch: A.Cols() != B.Rows().
//   - ErrOptionViolation:    threads < 1, or Fill with n < 1.
//   - ErrCheckFailed:        Check found a wrong corner.
//
// Complexity: Time O(m·k·n / threads); Space O(m·n) for the result.
package matmul
