package partition_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/halo/partition"
)

func TestStrips(t *testing.T) {
	t.Parallel()

	assert.Nil(t, partition.Strips(3, 3, 4))
	assert.Equal(t, []partition.Range{{Lo: 2, Hi: 5}, {Lo: 5, Hi: 7}, {Lo: 7, Hi: 9}}, partition.Strips(2, 9, 3))
	// More threads than rows collapses to one row per strip.
	assert.Len(t, partition.Strips(0, 2, 8), 2)
}

// TestSweeper_VisitsEveryRowOnce counts visits under concurrency and reuses
// one pool across many sweeps and interval changes.
func TestSweeper_VisitsEveryRowOnce(t *testing.T) {
	t.Parallel()

	for _, threads := range []int{0, 1, 2, 3, 7, 200} {
		sw := partition.NewSweeper(threads)
		for round, iv := range [][2]int{{1, 101}, {1, 101}, {0, 37}, {5, 6}, {1, 101}} {
			lo, hi := iv[0], iv[1]
			visits := make([]atomic.Int32, hi)
			got := sw.Sweep(lo, hi, func(a, b int) int {
				for r := a; r < b; r++ {
					visits[r].Add(1)
				}
				return b - a
			})
			require.Equal(t, hi-lo, got, "threads=%d round=%d", threads, round)
			for r := lo; r < hi; r++ {
				require.Equal(t, int32(1), visits[r].Load(), "row %d threads=%d round=%d", r, threads, round)
			}
		}
		assert.Zero(t, sw.Sweep(5, 5, func(int, int) int { return 1 }))
		sw.Close()

		// closed sweepers still work, inline
		assert.Equal(t, 10, sw.Sweep(0, 10, func(a, b int) int { return b - a }))
	}
}

func TestSweeper_Threads(t *testing.T) {
	t.Parallel()

	sw := partition.NewSweeper(-2)
	defer sw.Close()
	assert.Equal(t, 1, sw.Threads())
}
