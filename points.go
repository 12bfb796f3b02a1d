package hyperslab

import (
	"fmt"
	"strings"
)

// Points is a row-major coordinate matrix with one row per selected element
// and one column per axis. The 0x0 matrix is the "nothing selected" value
// produced when a RawNone selection is converted back to cooked form.
type Points struct {
	npoints int
	ndim    int
	coords  []int
}

// NewPoints builds a coordinate matrix from rows. Every row must have the
// same length. No rows yields the 0x0 matrix.
func NewPoints(rows ...[]int) (Points, error) {
	if len(rows) == 0 {
		return Points{}, nil
	}
	ndim := len(rows[0])
	coords := make([]int, 0, len(rows)*ndim)
	for i, row := range rows {
		if len(row) != ndim {
			return Points{}, &ValidationError{
				Op:     "NewPoints",
				Axis:   -1,
				Field:  "ndim",
				Value:  len(row),
				Limit:  ndim,
				Reason: fmt.Sprintf("point %d has %d coordinates, expected %d", i, len(row), ndim),
			}
		}
		coords = append(coords, row...)
	}
	return Points{npoints: len(rows), ndim: ndim, coords: coords}, nil
}

// PointList builds an n x 1 matrix from one-dimensional indices. An empty
// list yields the 0x0 matrix.
func PointList(indices ...int) Points {
	if len(indices) == 0 {
		return Points{}
	}
	return Points{npoints: len(indices), ndim: 1, coords: append([]int(nil), indices...)}
}

// EmptyPoints is a matrix with no rows and ndim columns
func EmptyPoints(ndim int) Points {
	return Points{ndim: ndim}
}

// Len is the number of points
func (p Points) Len() int { return p.npoints }

// NDim is the number of coordinates per point
func (p Points) NDim() int { return p.ndim }

// IsEmpty reports whether p is the 0x0 matrix
func (p Points) IsEmpty() bool { return p.npoints == 0 && p.ndim == 0 }

// At returns coordinate j of point i
func (p Points) At(i, j int) int { return p.coords[i*p.ndim+j] }

// Row returns a copy of point i
func (p Points) Row(i int) []int {
	return append([]int(nil), p.coords[i*p.ndim:(i+1)*p.ndim]...)
}

// Rows returns a copy of every point
func (p Points) Rows() [][]int {
	rows := make([][]int, p.npoints)
	for i := range rows {
		rows[i] = p.Row(i)
	}
	return rows
}

func (p Points) Equal(o Points) bool {
	if p.npoints != o.npoints || p.ndim != o.ndim {
		return false
	}
	for i := range p.coords {
		if p.coords[i] != o.coords[i] {
			return false
		}
	}
	return true
}

// String prints one row per line. An empty matrix with columns prints as
// "[](0xN)" so it stays distinct from the 0x0 "nothing selected" value.
func (p Points) String() string {
	if p.npoints == 0 {
		if p.ndim > 0 {
			return fmt.Sprintf("[](0x%d)", p.ndim)
		}
		return "[]"
	}
	b := &strings.Builder{}
	b.WriteString("[")
	for i := 0; i < p.npoints; i++ {
		if i > 0 {
			b.WriteString(",\n ")
		}
		b.WriteString("[")
		for j := 0; j < p.ndim; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%d", p.At(i, j))
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

// check bounds-checks every coordinate, column j against shape[j]
func (p Points) check(op string, shape []int) error {
	if p.IsEmpty() {
		return nil
	}
	if p.ndim != len(shape) {
		return ndimMismatch(op, p.ndim, len(shape))
	}
	for j, dim := range shape {
		for i := 0; i < p.npoints; i++ {
			if d := p.At(i, j); d < 0 || d >= dim {
				return outOfBounds(op, "index", j, d, dim)
			}
		}
	}
	return nil
}
