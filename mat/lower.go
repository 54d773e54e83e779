package mat

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
)

// Lower stores entries on or below the diagonal (col <= row). Column c holds rows c..rows-1.
type Lower struct {
	shape
	data []float64
}

func NewLower(rows, cols int) (*Lower, error) {
	s, err := newShape(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Lower{shape: s, data: make([]float64, lowerOffset(rows, cols))}, nil
}

// lowerOffset is the number of stored values before column c
func lowerOffset(rows, c int) int {
	if c <= rows {
		return c*rows - c*(c-1)/2
	}
	return rows * (rows + 1) / 2
}

func (l *Lower) Kind() Kind {
	return KindLower
}

func (l *Lower) At(col, row int) (float64, error) {
	if err := l.checkBounds(col, row); err != nil {
		return 0.0, err
	}
	if col > row {
		return 0.0, nil
	}
	return l.data[lowerOffset(l.rows, col)+row-col], nil
}

func (l *Lower) Set(col, row int, v float64) error {
	if err := l.checkBounds(col, row); err != nil {
		return err
	}
	if col > row {
		return fmt.Errorf("lower triangular (col %d, row %d), %w", col, row, ErrShapeViolation)
	}
	l.data[lowerOffset(l.rows, col)+row-col] = v
	return nil
}

// ColView returns a view of the stored part of column c, rows c..rows-1. The view is empty when c is
// past the last row.
func (l *Lower) ColView(c int) ([]float64, error) {
	if c < 0 || c >= l.cols {
		return nil, fmt.Errorf("column %d with %d columns, %w", c, l.cols, ErrOutOfBounds)
	}
	start, end := lowerOffset(l.rows, c), lowerOffset(l.rows, c+1)
	return l.data[start:end:end], nil
}

func (l *Lower) Add(o *Lower) (*Lower, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := l.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Lower{shape: l.shape, data: floatsunrolled.AddTo(nil, l.data, o.data)}, nil
}

func (l *Lower) Sub(o *Lower) (*Lower, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := l.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Lower{shape: l.shape, data: floatsunrolled.SubTo(nil, l.data, o.data)}, nil
}

// Mul computes l * o. Entry (col, row) only sums k in [col, row] where both factors can be nonzero.
func (l *Lower) Mul(o *Lower) (*Lower, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := l.mulDims(o.shape); err != nil {
		return nil, err
	}

	res := &Lower{shape: shape{rows: l.rows, cols: o.cols}, data: make([]float64, lowerOffset(l.rows, o.cols))}
	inner := l.cols
	for c := 0; c < res.cols; c++ {
		for r := c; r < res.rows; r++ {
			var sum float64
			for k := c; k <= r && k < inner; k++ {
				sum += l.data[lowerOffset(l.rows, k)+r-k] * o.data[lowerOffset(o.rows, c)+k-c]
			}
			res.data[lowerOffset(res.rows, c)+r-c] = sum
		}
	}
	return res, nil
}

func (l *Lower) Scale(c float64) *Lower {
	return &Lower{shape: l.shape, data: floatsunrolled.ScaleTo(nil, c, l.data)}
}

// MulVec returns l * x summing only the stored part of each row
func (l *Lower) MulVec(x *array.Array) (*array.Array, error) {
	if err := l.vecDims(x); err != nil {
		return nil, err
	}

	xs := x.Slice()
	res := make([]float64, l.rows)
	for c := 0; c < l.cols && c < l.rows; c++ {
		start := lowerOffset(l.rows, c)
		n := l.rows - c
		floatsunrolled.AddScaled(res[c:], xs[c], l.data[start:start+n])
	}
	return array.NewFromSlice(res)
}

// Transpose mirrors l into an upper triangular matrix
func (l *Lower) Transpose() *Upper {
	res := &Upper{shape: shape{rows: l.cols, cols: l.rows}, data: make([]float64, len(l.data))}
	for c := 0; c < l.cols && c < l.rows; c++ {
		for r := c; r < l.rows; r++ {
			res.data[upperOffset(res.rows, r)+c] = l.data[lowerOffset(l.rows, c)+r-c]
		}
	}
	return res
}

func (l *Lower) Copy() *Lower {
	data := make([]float64, len(l.data))
	copy(data, l.data)
	return &Lower{shape: l.shape, data: data}
}

func (l *Lower) Move() *Lower {
	res := &Lower{shape: l.shape, data: l.data}
	l.shape = shape{}
	l.data = nil
	return res
}

func (l *Lower) ToDense() *Dense {
	return toDense(l)
}

func (l *Lower) String() string {
	return render(l)
}
