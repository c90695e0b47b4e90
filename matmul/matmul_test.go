package matmul_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/matmul"
)

func randomMatrix(t testing.TB, rows, cols int, seed int64) *grid.Grid[float64] {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	g, err := grid.New[float64](rows, cols)
	require.NoError(t, err)
	for i := range g.Data() {
		g.Data()[i] = rng.Float64()*4 - 2
	}

	return g
}

func TestMultiply_Small(t *testing.T) {
	t.Parallel()

	a, err := grid.FromSlice(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	b, err := grid.FromSlice(3, 2, []float64{7, 8, 9, 10, 11, 12})
	require.NoError(t, err)

	c, err := matmul.Multiply(a, b, 2)
	require.NoError(t, err)
	want, _ := grid.FromSlice(2, 2, []float64{58, 64, 139, 154})
	assert.True(t, want.Equal(c), "got:\n%s", c)
}

// TestMultiply_MatchesSequential checks bit-identical results for any
// thread count, including more threads than rows.
func TestMultiply_MatchesSequential(t *testing.T) {
	t.Parallel()

	shapes := [][3]int{{1, 1, 1}, {7, 5, 3}, {33, 17, 29}, {64, 64, 64}}
	for si, sh := range shapes {
		a := randomMatrix(t, sh[0], sh[1], int64(si))
		b := randomMatrix(t, sh[1], sh[2], int64(si+100))
		want, err := matmul.Sequential(a, b)
		require.NoError(t, err)

		for _, threads := range []int{1, 2, 3, 8, 100} {
			t.Run(fmt.Sprintf("%v/t%d", sh, threads), func(t *testing.T) {
				got, err := matmul.Multiply(a, b, threads)
				require.NoError(t, err)
				assert.True(t, want.Equal(got))
			})
		}
	}
}

func TestFillCheck(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 50} {
		a, b, err := matmul.Fill(n)
		require.NoError(t, err)
		c, err := matmul.Multiply(a, b, 4)
		require.NoError(t, err)
		require.NoError(t, matmul.Check(c), "n=%d", n)

		require.NoError(t, c.Set(n-1, n-1, 0))
		assert.ErrorIs(t, matmul.Check(c), matmul.ErrCheckFailed)
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	a := randomMatrix(t, 2, 3, 1)
	_, err := matmul.Multiply(a, nil, 1)
	assert.ErrorIs(t, err, matmul.ErrNilMatrix)
	_, err = matmul.Sequential(nil, a)
	assert.ErrorIs(t, err, matmul.ErrNilMatrix)
	_, err = matmul.Multiply(a, a, 1)
	assert.ErrorIs(t, err, grid.ErrDimensionMismatch)
	_, err = matmul.Multiply(a, randomMatrix(t, 3, 2, 2), 0)
	assert.ErrorIs(t, err, matmul.ErrOptionViolation)
	_, _, err = matmul.Fill(0)
	assert.ErrorIs(t, err, matmul.ErrOptionViolation)
	assert.ErrorIs(t, matmul.Check(a), grid.ErrDimensionMismatch)
}
