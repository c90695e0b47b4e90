package stencil

import (
	"fmt"

	"github.com/katalvlaran/halo/grid"
)

// Sequential is the single-buffer-pair reference implementation: the same
// kernel and stopping rule as Stretch without partitioning or messages.
// img is not modified.
func Sequential(img *grid.Grid[uint8], steps, stepBy, channels int) (*grid.Grid[uint8], Result, error) {
	if img == nil {
		return nil, Result{}, fmt.Errorf("Sequential: %w", ErrNilImage)
	}
	if steps < 0 || stepBy < 1 || stepBy > 255 || channels < 1 {
		return nil, Result{}, fmt.Errorf("Sequential: steps=%d stepBy=%d channels=%d: %w",
			steps, stepBy, channels, ErrOptionViolation)
	}
	if img.Cols()%channels != 0 {
		return nil, Result{}, fmt.Errorf("Sequential: %w", ErrChannelMismatch)
	}

	bufs, err := grid.NewPair[uint8](img.Rows(), img.Cols())
	if err != nil {
		return nil, Result{}, fmt.Errorf("Sequential: %w", err)
	}
	if err = bufs.Current().CopyFrom(img); err != nil {
		return nil, Result{}, fmt.Errorf("Sequential: %w", err)
	}
	bufs.Sync()

	var res Result
	rows := img.Rows()
	for step := 1; step <= steps; step++ {
		cur, next := bufs.Current(), bufs.Next()
		changes := 0
		for r := 1; r < rows-1; r++ {
			above, _ := cur.Row(r - 1)
			row, _ := cur.Row(r)
			below, _ := cur.Row(r + 1)
			out, _ := next.Row(r)
			changes += stretchRow(out, above, row, below, channels, uint8(stepBy))
		}
		bufs.Swap()
		res.Steps = step
		res.Changes = append(res.Changes, changes)
		if changes == 0 {
			res.Converged = true
			break
		}
	}

	return bufs.Current().Clone(), res, nil
}
