// SPDX-License-Identifier: MIT

package matmul

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/partition"
)

// Sentinel errors for matrix multiplication.
var (
	// ErrNilMatrix is returned when an operand is nil.
	ErrNilMatrix = errors.New("matmul: matrix is nil")

	// ErrOptionViolation is returned for invalid thread counts or sizes.
	ErrOptionViolation = errors.New("matmul: invalid option supplied")

	// ErrCheckFailed is returned when a product fails its corner check.
	ErrCheckFailed = errors.New("matmul: product check failed")
)

// checkTolerance bounds the corner error accepted by Check.
const checkTolerance = 1e-7

// Operation name constants for unified error wrapping.
const (
	opMultiply   = "Multiply"
	opSequential = "Sequential"
)

func validate(op string, a, b *grid.Grid[float64]) error {
	if a == nil || b == nil {
		return fmt.Errorf("%s: %w", op, ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return fmt.Errorf("%s: %dx%d · %dx%d: %w",
			op, a.Rows(), a.Cols(), b.Rows(), b.Cols(), grid.ErrDimensionMismatch)
	}

	return nil
}

// multiplyRows accumulates rows [lo, hi) of c = a·b. c must be zeroed.
func multiplyRows(a, b, c []float64, k, n, lo, hi int) {
	var (
		i, p, j int
		aip     float64
	)
	for i = lo; i < hi; i++ {
		ci := c[i*n : (i+1)*n]
		for p = 0; p < k; p++ {
			aip = a[i*k+p]
			bp := b[p*n : (p+1)*n]
			for j = 0; j < n; j++ {
				ci[j] += aip * bp[j]
			}
		}
	}
}

// Multiply returns a·b, splitting the rows of the result over threads
// goroutines. a and b are not modified.
func Multiply(a, b *grid.Grid[float64], threads int) (*grid.Grid[float64], error) {
	if threads < 1 {
		return nil, fmt.Errorf("%s: %w: threads must be >= 1 (%d)", opMultiply, ErrOptionViolation, threads)
	}
	if err := validate(opMultiply, a, b); err != nil {
		return nil, err
	}
	m, k, n := a.Rows(), a.Cols(), b.Cols()
	c, err := grid.New[float64](m, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opMultiply, err)
	}

	sweeper := partition.NewSweeper(threads)
	defer sweeper.Close()
	ad, bd, cd := a.Data(), b.Data(), c.Data()
	sweeper.Sweep(0, m, func(lo, hi int) int {
		multiplyRows(ad, bd, cd, k, n, lo, hi)
		return 0
	})

	return c, nil
}

// Sequential returns a·b on the calling goroutine.
func Sequential(a, b *grid.Grid[float64]) (*grid.Grid[float64], error) {
	if err := validate(opSequential, a, b); err != nil {
		return nil, err
	}
	m, k, n := a.Rows(), a.Cols(), b.Cols()
	c, err := grid.New[float64](m, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSequential, err)
	}
	multiplyRows(a.Data(), b.Data(), c.Data(), k, n, 0, m)

	return c, nil
}

// Fill returns the n×n operands A[r][c] = r+1 and B[r][c] = c+1.
func Fill(n int) (a, b *grid.Grid[float64], err error) {
	if n < 1 {
		return nil, nil, fmt.Errorf("Fill: %w: size must be >= 1 (%d)", ErrOptionViolation, n)
	}
	a, b = grid.MustNew[float64](n, n), grid.MustNew[float64](n, n)
	ad, bd := a.Data(), b.Data()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			ad[r*n+c] = float64(r + 1)
			bd[r*n+c] = float64(c + 1)
		}
	}

	return a, b, nil
}

// Check verifies the four corners of the product of Fill(n):
// C[i][j] = n·(i+1)·(j+1).
func Check(c *grid.Grid[float64]) error {
	if c == nil {
		return fmt.Errorf("Check: %w", ErrNilMatrix)
	}
	n := c.Rows()
	if n < 1 || c.Cols() != n {
		return fmt.Errorf("Check: %dx%d: %w", c.Rows(), c.Cols(), grid.ErrDimensionMismatch)
	}
	dn := float64(n)
	corners := []struct {
		i, j int
		want float64
	}{
		{0, 0, dn},
		{0, n - 1, dn * dn},
		{n - 1, 0, dn * dn},
		{n - 1, n - 1, dn * dn * dn},
	}
	for _, cr := range corners {
		got, _ := c.At(cr.i, cr.j)
		if math.Abs(got-cr.want) >= checkTolerance {
			return fmt.Errorf("Check: C[%d][%d]=%g, want %g: %w", cr.i, cr.j, got, cr.want, ErrCheckFailed)
		}
	}

	return nil
}
