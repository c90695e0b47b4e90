// SPDX-License-Identifier: MIT

package stencil

const maxValue = 255

// Median9 sorts the 9 window values in place with a selection sort and
// returns the median, minimum and maximum.
func Median9(a *[9]uint8) (median, lo, hi uint8) {
	for i := 0; i < 8; i++ {
		m := i
		for j := i + 1; j < 9; j++ {
			if a[j] < a[m] {
				m = j
			}
		}
		a[i], a[m] = a[m], a[i]
	}

	return a[4], a[0], a[8]
}

// NewValue returns the stretched value of p given its 3×3 window (p included).
//
//	min == max      -> min
//	ratio < 0.5     -> p - stepBy, saturating at 0
//	ratio > 0.5     -> p + stepBy, saturating at 255
//	ratio == 0.5    -> p
//
// where ratio = (p - min) / (max - min).
func NewValue(window [9]uint8, p, stepBy uint8) uint8 {
	_, lo, hi := Median9(&window)
	if lo == hi {
		return lo
	}

	ratio := float64(p-lo) / float64(hi-lo)
	switch {
	case ratio < 0.5:
		if p > stepBy {
			return p - stepBy
		}
		return 0
	case ratio > 0.5:
		if int(p) < maxValue-int(stepBy) {
			return p + stepBy
		}
		return maxValue
	default:
		return p
	}
}

// stretchRow recomputes one row. above, row and below are full-width rows of
// the current buffer; out is the same row of the next buffer. Columns of the
// first and last pixel are left untouched. It returns the number of changed
// cells.
func stretchRow(out, above, row, below []uint8, channels int, stepBy uint8) int {
	changes := 0
	width := len(row)
	var w [9]uint8
	for x := channels; x < width-channels; x++ {
		l, r := x-channels, x+channels
		w = [9]uint8{
			above[l], above[x], above[r],
			row[l], row[x], row[r],
			below[l], below[x], below[r],
		}
		v := NewValue(w, row[x], stepBy)
		out[x] = v
		if v != row[x] {
			changes++
		}
	}

	return changes
}
