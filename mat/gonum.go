package mat

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NewDenseFromArray builds a Dense from row slices, x[r][c] is (col c, row r)
func NewDenseFromArray(x [][]float64) (*Dense, error) {
	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}

	d, err := NewDense(len(x), n)
	if err != nil {
		return nil, err
	}
	for r, row := range x {
		for c, v := range row {
			d.data[d.idx(c, r)] = v
		}
	}
	return d, nil
}

// NewDenseFromGonum copies any gonum matrix into a Dense
func NewDenseFromGonum(m mat.Matrix) (*Dense, error) {
	if m == nil {
		return nil, ErrUninitialized
	}
	rows, cols := m.Dims()
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			d.data[d.idx(c, r)] = m.At(r, c)
		}
	}
	return d, nil
}

// Gonum exposes any store as a read only gonum matrix so it can be passed to gonum routines
func Gonum(m Matrix) mat.Matrix {
	return gonumView{m: m}
}

type gonumView struct {
	m Matrix
}

func (g gonumView) Dims() (int, int) {
	return g.m.Dims()
}

// At follows gonum's (row, col) order and panics on an out of range index like gonum does
func (g gonumView) At(i, j int) float64 {
	v, err := g.m.At(j, i)
	if err != nil {
		panic(mat.ErrIndexOutOfRange)
	}
	return v
}

func (g gonumView) T() mat.Matrix {
	return mat.Transpose{Matrix: g}
}
