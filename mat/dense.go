package mat

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
)

// Dense materializes every entry. The data is stored in column major order where the first rows
// values are the first column, e.g. [][]float64{{1, 2}, {3, 4}} is stored as {1, 3, 2, 4}.
type Dense struct {
	shape
	data []float64
}

func NewDense(rows, cols int) (*Dense, error) {
	s, err := newShape(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Dense{shape: s, data: make([]float64, rows*cols)}, nil
}

func (d *Dense) Kind() Kind {
	return KindDense
}

func (d *Dense) idx(col, row int) int {
	return col*d.rows + row
}

// At retrieves a single value at a specific column and row
func (d *Dense) At(col, row int) (float64, error) {
	if err := d.checkBounds(col, row); err != nil {
		return 0.0, err
	}
	return d.data[d.idx(col, row)], nil
}

func (d *Dense) Set(col, row int, v float64) error {
	if err := d.checkBounds(col, row); err != nil {
		return err
	}
	d.data[d.idx(col, row)] = v
	return nil
}

// ColView returns a slice view of the specified column. Writes through the view modify the matrix.
func (d *Dense) ColView(c int) ([]float64, error) {
	if c < 0 || c >= d.cols {
		return nil, fmt.Errorf("column %d with %d columns, %w", c, d.cols, ErrOutOfBounds)
	}
	return d.data[c*d.rows : (c+1)*d.rows : (c+1)*d.rows], nil
}

// Row returns a copy of the specified row
func (d *Dense) Row(r int) ([]float64, error) {
	if r < 0 || r >= d.rows {
		return nil, fmt.Errorf("row %d with %d rows, %w", r, d.rows, ErrOutOfBounds)
	}

	res := make([]float64, 0, d.cols)
	for c := 0; c < d.cols; c++ {
		res = append(res, d.data[d.idx(c, r)])
	}
	return res, nil
}

// SwapRows exchanges rows i and j across every column
func (d *Dense) SwapRows(i, j int) error {
	if i < 0 || i >= d.rows || j < 0 || j >= d.rows {
		return fmt.Errorf("swapping rows %d and %d with %d rows, %w", i, j, d.rows, ErrOutOfBounds)
	}
	if i == j {
		return nil
	}
	for c := 0; c < d.cols; c++ {
		a, b := d.idx(c, i), d.idx(c, j)
		d.data[a], d.data[b] = d.data[b], d.data[a]
	}
	return nil
}

func (d *Dense) Add(o *Dense) (*Dense, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := d.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Dense{shape: d.shape, data: floatsunrolled.AddTo(nil, d.data, o.data)}, nil
}

func (d *Dense) Sub(o *Dense) (*Dense, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := d.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Dense{shape: d.shape, data: floatsunrolled.SubTo(nil, d.data, o.data)}, nil
}

// Mul computes the matrix product d * o. Each result column is accumulated as a sum of scaled
// columns of d.
func (d *Dense) Mul(o *Dense) (*Dense, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := d.mulDims(o.shape); err != nil {
		return nil, err
	}

	res := &Dense{shape: shape{rows: d.rows, cols: o.cols}, data: make([]float64, d.rows*o.cols)}
	for c := 0; c < o.cols; c++ {
		dst := res.data[c*res.rows : (c+1)*res.rows]
		for k := 0; k < d.cols; k++ {
			v := o.data[o.idx(c, k)]
			if v == 0 {
				continue
			}
			floatsunrolled.AddScaled(dst, v, d.data[k*d.rows:(k+1)*d.rows])
		}
	}
	return res, nil
}

// Scale returns c * d
func (d *Dense) Scale(c float64) *Dense {
	return &Dense{shape: d.shape, data: floatsunrolled.ScaleTo(nil, c, d.data)}
}

// MulVec returns d * x
func (d *Dense) MulVec(x *array.Array) (*array.Array, error) {
	if err := d.vecDims(x); err != nil {
		return nil, err
	}

	xs := x.Slice()
	res := make([]float64, d.rows)
	for c, v := range xs {
		floatsunrolled.AddScaled(res, v, d.data[c*d.rows:(c+1)*d.rows])
	}
	return array.NewFromSlice(res)
}

func (d *Dense) Transpose() *Dense {
	res := &Dense{shape: shape{rows: d.cols, cols: d.rows}, data: make([]float64, len(d.data))}
	for c := 0; c < d.cols; c++ {
		for r := 0; r < d.rows; r++ {
			res.data[res.idx(r, c)] = d.data[d.idx(c, r)]
		}
	}
	return res
}

// Augment returns [d | b] with b appended as the last column
func (d *Dense) Augment(b *array.Array) (*Dense, error) {
	if b == nil {
		return nil, array.ErrUninitialized
	}
	if b.Size() != d.rows {
		return nil, fmt.Errorf("matrix has %d rows and array has size %d, %w", d.rows, b.Size(), ErrDimensionMismatch)
	}

	data := make([]float64, 0, len(d.data)+d.rows)
	data = append(data, d.data...)
	data = append(data, b.Slice()...)
	return &Dense{shape: shape{rows: d.rows, cols: d.cols + 1}, data: data}, nil
}

func (d *Dense) Copy() *Dense {
	data := make([]float64, len(d.data))
	copy(data, d.data)
	return &Dense{shape: d.shape, data: data}
}

// Move transfers the storage to the returned matrix and leaves d empty
func (d *Dense) Move() *Dense {
	res := &Dense{shape: d.shape, data: d.data}
	d.shape = shape{}
	d.data = nil
	return res
}

// Data returns a copy of the entries in column major order
func (d *Dense) Data() []float64 {
	data := make([]float64, len(d.data))
	copy(data, d.data)
	return data
}

func (d *Dense) ToDense() *Dense {
	return d.Copy()
}

func (d *Dense) String() string {
	return render(d)
}
