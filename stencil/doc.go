// SPDX-License-Identifier: MIT

// Package stencil runs distributed contrast stretching: an iterative
// 8-neighbor stencil over an image partitioned by contiguous row ranges.
//
// What:
//
//   - Each pixel channel looks at its 3×3 window (same channel). If the window
//     is flat the value is kept; otherwise the pixel moves StepBy toward the
//     nearer extreme (darker if below the midpoint, lighter if above),
//     saturating at 0 and 255.
//   - The outermost rows and columns of the whole image are never recomputed.
//   - Workers exchange one ghost row with each chain neighbor before every
//     step (a "down" shift then an "up" shift), sweep their rows into a second
//     buffer, and agree on convergence through a global sum of changed cells.
//
// Determinism:
//
//   - The result is byte-identical for any worker and thread count: each step
//     reads only the previous step's buffer.
//
// Options:
//
//   - WithSteps, WithStepBy, WithChannels, WithWorkers, WithThreads.
//   - WithLogger, WithOnStep for progress reporting.
//
// Errors:
//
//   - ErrNilImage, ErrChannelMismatch, ErrOptionViolation.
//   - partition.ErrInvalidPartition when the image has fewer rows than workers.
package stencil
