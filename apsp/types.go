// SPDX-License-Identifier: MIT

package apsp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/halo/grid"
)

// Infinity marks a pair with no path.
const Infinity int64 = math.MaxInt64

// MaxWeight is the largest accepted edge weight.
const MaxWeight int64 = math.MaxInt32

// DefaultProgressEvery is how many pivots pass between progress logs.
const DefaultProgressEvery = 100

// Sentinel errors for all-pairs shortest paths.
var (
	// ErrNilMatrix is returned when a nil distance matrix is passed.
	ErrNilMatrix = errors.New("apsp: distance matrix is nil")

	// ErrNonSquare is returned for non-square matrices.
	ErrNonSquare = errors.New("apsp: matrix is not square")

	// ErrNonZeroDiagonal is returned when a self-distance is not 0.
	ErrNonZeroDiagonal = errors.New("apsp: diagonal must be zero")

	// ErrNegativeDistance is returned for entries below zero.
	ErrNegativeDistance = errors.New("apsp: negative distance")

	// ErrVertexRange is returned for vertices outside [0, n).
	ErrVertexRange = errors.New("apsp: vertex out of range")

	// ErrWeightRange is returned for weights outside [0, MaxWeight].
	ErrWeightRange = errors.New("apsp: weight out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("apsp: invalid option supplied")
)

// NewDistances returns an n×n matrix with a zero diagonal and Infinity elsewhere.
func NewDistances(n int) (*grid.Grid[int64], error) {
	d, err := grid.New[int64](n, n)
	if err != nil {
		return nil, fmt.Errorf("NewDistances(%d): %w", n, err)
	}
	d.Fill(Infinity)
	for i := 0; i < n; i++ {
		_ = d.Set(i, i, 0)
	}

	return d, nil
}

// AddEdge records a directed edge u→v of weight w, keeping the lighter weight
// if one is already present. Self-loops are ignored: the diagonal stays 0.
func AddEdge(d *grid.Grid[int64], u, v int, w int64) error {
	if d == nil {
		return ErrNilMatrix
	}
	n := d.Rows()
	if u < 0 || u >= n || v < 0 || v >= n {
		return fmt.Errorf("AddEdge(%d,%d): n=%d: %w", u, v, n, ErrVertexRange)
	}
	if w < 0 || w > MaxWeight {
		return fmt.Errorf("AddEdge(%d,%d): weight %d: %w", u, v, w, ErrWeightRange)
	}
	if u == v {
		return nil
	}
	if cur, _ := d.At(u, v); w < cur {
		_ = d.Set(u, v, w)
	}

	return nil
}

// Validate checks the distance-matrix contract: square, zero diagonal, no
// negative entries.
func Validate(d *grid.Grid[int64]) error {
	if d == nil {
		return ErrNilMatrix
	}
	n := d.Rows()
	if n != d.Cols() {
		return fmt.Errorf("Validate: %dx%d: %w", d.Rows(), d.Cols(), ErrNonSquare)
	}
	data := d.Data()
	for i := 0; i < n; i++ {
		if data[i*n+i] != 0 {
			return fmt.Errorf("Validate: d[%d][%d]=%d: %w", i, i, data[i*n+i], ErrNonZeroDiagonal)
		}
	}
	for idx, v := range data {
		if v < 0 {
			return fmt.Errorf("Validate: d[%d][%d]=%d: %w", idx/n, idx%n, v, ErrNegativeDistance)
		}
	}

	return nil
}

// Option configures a FloydWarshall run.
type Option func(*Options)

// Options holds the effective configuration of one run.
type Options struct {
	Workers       int
	Threads       int
	ProgressEvery int
	Logger        *slog.Logger
	OnPivot       func(k int) // called on the coordinator after pivot k

	err error
}

// DefaultOptions returns a single-worker, single-thread configuration with a
// discarding logger.
func DefaultOptions() Options {
	return Options{
		Workers:       1,
		Threads:       1,
		ProgressEvery: DefaultProgressEvery,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnPivot:       func(int) {},
	}
}

// WithWorkers sets the number of row partitions (n >= 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithThreads sets the row-strip parallelism inside each worker (n >= 1).
func WithThreads(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: threads must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Threads = n
	}
}

// WithProgressEvery logs progress every n pivots; 0 disables progress logs.
func WithProgressEvery(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: progress interval cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.ProgressEvery = n
	}
}

// WithLogger routes progress logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnPivot registers a callback invoked on the coordinator after each pivot.
func WithOnPivot(fn func(k int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPivot = fn
		}
	}
}
