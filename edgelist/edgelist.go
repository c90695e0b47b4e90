// SPDX-License-Identifier: MIT

// Package edgelist reads edge-list files into dense distance matrices and
// writes or reads those matrices as text.
//
// Edge lines have the form "u v [w]": a directed edge u→v with weight w
// (default 1). Blank lines and lines starting with '#' are ignored.
//
// Matrix files start with the vertex count on its own line followed by one
// line per row of whitespace-separated distances; unreachable pairs are
// written as INF.
package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/halo/apsp"
	"github.com/katalvlaran/halo/grid"
)

// InfToken is the textual form of apsp.Infinity.
const InfToken = "INF"

var (
	// ErrMalformed indicates a line that cannot be parsed.
	ErrMalformed = errors.New("edgelist: malformed line")

	// ErrSizeMismatch indicates a matrix whose size differs from the expected one.
	ErrSizeMismatch = errors.New("edgelist: size mismatch")
)

// Stats summarizes an edge-list read.
type Stats struct {
	Lines   int // lines scanned
	Edges   int // edges applied to the matrix
	Skipped int // edges dropped for out-of-range endpoints
}

// ReadEdges builds an n×n distance matrix from edge lines. Edges with an
// endpoint outside [0, n) are skipped and counted; self-loops are applied
// as no-ops.
func ReadEdges(r io.Reader, n int) (*grid.Grid[int64], Stats, error) {
	var st Stats
	d, err := apsp.NewDistances(n)
	if err != nil {
		return nil, st, err
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		st.Lines++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 2 || len(fields) > 3 {
			return nil, st, fmt.Errorf("line %d: %d fields: %w", st.Lines, len(fields), ErrMalformed)
		}
		u, err1 := strconv.Atoi(fields[0])
		v, err2 := strconv.Atoi(fields[1])
		if err := errors.Join(err1, err2); err != nil {
			return nil, st, fmt.Errorf("line %d: %w: %v", st.Lines, ErrMalformed, err)
		}
		w := int64(1)
		if len(fields) == 3 {
			if w, err = strconv.ParseInt(fields[2], 10, 64); err != nil {
				return nil, st, fmt.Errorf("line %d: %w: %v", st.Lines, ErrMalformed, err)
			}
		}
		if u < 0 || u >= n || v < 0 || v >= n {
			st.Skipped++
			continue
		}
		if err = apsp.AddEdge(d, u, v, w); err != nil {
			return nil, st, fmt.Errorf("line %d: %w", st.Lines, err)
		}
		st.Edges++
	}
	if err = sc.Err(); err != nil {
		return nil, st, err
	}

	return d, st, nil
}

// WriteMatrix writes d with a leading vertex-count line.
func WriteMatrix(w io.Writer, d *grid.Grid[int64]) error {
	if d == nil {
		return apsp.ErrNilMatrix
	}
	if d.Rows() != d.Cols() {
		return fmt.Errorf("WriteMatrix: %dx%d: %w", d.Rows(), d.Cols(), apsp.ErrNonSquare)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(d.Rows()))
	bw.WriteByte('\n')
	buf := make([]byte, 0, 24)
	for i := 0; i < d.Rows(); i++ {
		row, _ := d.Row(i)
		for j, v := range row {
			if j > 0 {
				bw.WriteByte(' ')
			}
			if v == apsp.Infinity {
				bw.WriteString(InfToken)
				continue
			}
			bw.Write(strconv.AppendInt(buf[:0], v, 10))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// ReadMatrix parses a matrix written by WriteMatrix. A header that disagrees
// with expected yields ErrSizeMismatch; expected <= 0 accepts any size.
func ReadMatrix(r io.Reader, expected int) (*grid.Grid[int64], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("line 1: missing header: %w", ErrMalformed)
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("line 1: header %q: %w", sc.Text(), ErrMalformed)
	}
	if expected > 0 && n != expected {
		return nil, fmt.Errorf("matrix has %d vertices, want %d: %w", n, expected, ErrSizeMismatch)
	}

	d, err := grid.New[int64](n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		line := i + 2
		if !sc.Scan() {
			if err = sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%d rows, want %d: %w", i, n, ErrSizeMismatch)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != n {
			return nil, fmt.Errorf("line %d: %d columns, want %d: %w", line, len(fields), n, ErrSizeMismatch)
		}
		row, _ := d.Row(i)
		for j, f := range fields {
			if f == InfToken {
				row[j] = apsp.Infinity
				continue
			}
			if row[j], err = strconv.ParseInt(f, 10, 64); err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformed, err)
			}
		}
	}

	return d, nil
}
