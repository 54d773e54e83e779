package mat

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
)

// Upper stores entries on or above the diagonal (col >= row). Column c holds rows
// 0..min(c, rows-1) back to back.
type Upper struct {
	shape
	data []float64
}

func NewUpper(rows, cols int) (*Upper, error) {
	s, err := newShape(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Upper{shape: s, data: make([]float64, upperOffset(rows, cols))}, nil
}

// upperOffset is the number of stored values before column c
func upperOffset(rows, c int) int {
	if c <= rows {
		return c * (c + 1) / 2
	}
	return rows*(rows+1)/2 + (c-rows)*rows
}

func (u *Upper) Kind() Kind {
	return KindUpper
}

func (u *Upper) At(col, row int) (float64, error) {
	if err := u.checkBounds(col, row); err != nil {
		return 0.0, err
	}
	if col < row {
		return 0.0, nil
	}
	return u.data[upperOffset(u.rows, col)+row], nil
}

func (u *Upper) Set(col, row int, v float64) error {
	if err := u.checkBounds(col, row); err != nil {
		return err
	}
	if col < row {
		return fmt.Errorf("upper triangular (col %d, row %d), %w", col, row, ErrShapeViolation)
	}
	u.data[upperOffset(u.rows, col)+row] = v
	return nil
}

// ColView returns a view of the stored part of column c, rows 0..min(c, rows-1). Writes through the
// view modify the matrix.
func (u *Upper) ColView(c int) ([]float64, error) {
	if c < 0 || c >= u.cols {
		return nil, fmt.Errorf("column %d with %d columns, %w", c, u.cols, ErrOutOfBounds)
	}
	start, end := upperOffset(u.rows, c), upperOffset(u.rows, c+1)
	return u.data[start:end:end], nil
}

func (u *Upper) Add(o *Upper) (*Upper, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := u.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Upper{shape: u.shape, data: floatsunrolled.AddTo(nil, u.data, o.data)}, nil
}

func (u *Upper) Sub(o *Upper) (*Upper, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := u.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Upper{shape: u.shape, data: floatsunrolled.SubTo(nil, u.data, o.data)}, nil
}

// Mul computes u * o. Entry (col, row) only sums k in [row, col] where both factors can be nonzero.
func (u *Upper) Mul(o *Upper) (*Upper, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := u.mulDims(o.shape); err != nil {
		return nil, err
	}

	res := &Upper{shape: shape{rows: u.rows, cols: o.cols}, data: make([]float64, upperOffset(u.rows, o.cols))}
	inner := u.cols
	for c := 0; c < res.cols; c++ {
		for r := 0; r <= c && r < res.rows; r++ {
			var sum float64
			for k := r; k <= c && k < inner; k++ {
				sum += u.data[upperOffset(u.rows, k)+r] * o.data[upperOffset(o.rows, c)+k]
			}
			res.data[upperOffset(res.rows, c)+r] = sum
		}
	}
	return res, nil
}

func (u *Upper) Scale(c float64) *Upper {
	return &Upper{shape: u.shape, data: floatsunrolled.ScaleTo(nil, c, u.data)}
}

// MulVec returns u * x summing only the stored part of each row
func (u *Upper) MulVec(x *array.Array) (*array.Array, error) {
	if err := u.vecDims(x); err != nil {
		return nil, err
	}

	xs := x.Slice()
	res := make([]float64, u.rows)
	for c := 0; c < u.cols; c++ {
		start := upperOffset(u.rows, c)
		n := min(c+1, u.rows)
		floatsunrolled.AddScaled(res[:n], xs[c], u.data[start:start+n])
	}
	return array.NewFromSlice(res)
}

// Transpose mirrors u into a lower triangular matrix
func (u *Upper) Transpose() *Lower {
	res := &Lower{shape: shape{rows: u.cols, cols: u.rows}, data: make([]float64, len(u.data))}
	for c := 0; c < u.cols; c++ {
		for r := 0; r <= c && r < u.rows; r++ {
			res.data[lowerOffset(res.rows, r)+c-r] = u.data[upperOffset(u.rows, c)+r]
		}
	}
	return res
}

func (u *Upper) Copy() *Upper {
	data := make([]float64, len(u.data))
	copy(data, u.data)
	return &Upper{shape: u.shape, data: data}
}

func (u *Upper) Move() *Upper {
	res := &Upper{shape: u.shape, data: u.data}
	u.shape = shape{}
	u.data = nil
	return res
}

func (u *Upper) ToDense() *Dense {
	return toDense(u)
}

func (u *Upper) String() string {
	return render(u)
}
