// Package mat implements the structured matrix stores used by the solver. Each store represents a
// rows x cols grid addressed by (col, row) pairs, stores its values column major, and omits the
// entries its shape forces to zero.
package mat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aouyang1/go-poisson/array"
)

// Kind tags the storage layout of a Matrix
type Kind int

const (
	KindDense Kind = iota
	KindUpper
	KindLower
	KindSym
	KindTri
)

func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindUpper:
		return "upper"
	case KindLower:
		return "lower"
	case KindSym:
		return "symmetric"
	case KindTri:
		return "tridiagonal"
	default:
		return "unknown"
	}
}

// Matrix is the capability shared by every store. At and Set take the column first.
type Matrix interface {
	Kind() Kind
	Dims() (rows, cols int)
	Rows() int
	Cols() int
	At(col, row int) (float64, error)
	Set(col, row int, v float64) error
	MulVec(x *array.Array) (*array.Array, error)
	ToDense() *Dense
	String() string
}

var (
	_ Matrix = (*Dense)(nil)
	_ Matrix = (*Upper)(nil)
	_ Matrix = (*Lower)(nil)
	_ Matrix = (*Sym)(nil)
	_ Matrix = (*Tri)(nil)
)

type shape struct {
	rows int
	cols int
}

func newShape(rows, cols int) (shape, error) {
	if rows <= 0 || cols <= 0 {
		return shape{}, fmt.Errorf("got %d rows and %d cols, %w", rows, cols, ErrInvalidSize)
	}
	return shape{rows: rows, cols: cols}, nil
}

func newSquareShape(rows, cols int) (shape, error) {
	s, err := newShape(rows, cols)
	if err != nil {
		return shape{}, err
	}
	if rows != cols {
		return shape{}, fmt.Errorf("got %d rows and %d cols for a square layout, %w", rows, cols, ErrDimensionMismatch)
	}
	return s, nil
}

func (s shape) Dims() (int, int) {
	return s.rows, s.cols
}

func (s shape) Rows() int {
	return s.rows
}

func (s shape) Cols() int {
	return s.cols
}

func (s shape) checkBounds(col, row int) error {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return fmt.Errorf("(col %d, row %d) in %dx%d matrix, %w", col, row, s.rows, s.cols, ErrOutOfBounds)
	}
	return nil
}

func (s shape) sameDims(o shape) error {
	if s.rows != o.rows || s.cols != o.cols {
		return fmt.Errorf("%dx%d and %dx%d, %w", s.rows, s.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	return nil
}

func (s shape) mulDims(o shape) error {
	if s.cols != o.rows {
		return fmt.Errorf("lhs has %d cols and rhs has %d rows, %w", s.cols, o.rows, ErrDimensionMismatch)
	}
	return nil
}

func (s shape) vecDims(x *array.Array) error {
	if x == nil {
		return array.ErrUninitialized
	}
	if x.Size() != s.cols {
		return fmt.Errorf("matrix has %d cols and array has size %d, %w", s.cols, x.Size(), ErrDimensionMismatch)
	}
	return nil
}

// render writes m row by row with values separated by a single space
func render(m Matrix) string {
	rows, cols := m.Dims()

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v, _ := m.At(c, r)
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// toDense materializes any store, structural zeros included
func toDense(m Matrix) *Dense {
	rows, cols := m.Dims()
	d := &Dense{shape: shape{rows: rows, cols: cols}, data: make([]float64, rows*cols)}
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v, _ := m.At(c, r)
			d.data[c*rows+r] = v
		}
	}
	return d
}
