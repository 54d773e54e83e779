package mat

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
)

// Sym is a packed symmetric matrix. Only the cell with row <= col is stored, so (c, r) and (r, c)
// address the same value and symmetry holds by construction.
type Sym struct {
	shape
	data []float64
}

// NewSym requires rows == cols
func NewSym(rows, cols int) (*Sym, error) {
	s, err := newSquareShape(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Sym{shape: s, data: make([]float64, rows*(rows+1)/2)}, nil
}

func (s *Sym) Kind() Kind {
	return KindSym
}

func (s *Sym) idx(col, row int) int {
	if row > col {
		col, row = row, col
	}
	return col*(col+1)/2 + row
}

func (s *Sym) At(col, row int) (float64, error) {
	if err := s.checkBounds(col, row); err != nil {
		return 0.0, err
	}
	return s.data[s.idx(col, row)], nil
}

// Set writes the single cell shared by (col, row) and (row, col)
func (s *Sym) Set(col, row int, v float64) error {
	if err := s.checkBounds(col, row); err != nil {
		return err
	}
	s.data[s.idx(col, row)] = v
	return nil
}

// ColView returns a view of the stored part of column c, rows 0..c. By symmetry this is also row c
// up to the diagonal.
func (s *Sym) ColView(c int) ([]float64, error) {
	if c < 0 || c >= s.cols {
		return nil, fmt.Errorf("column %d with %d columns, %w", c, s.cols, ErrOutOfBounds)
	}
	start, end := c*(c+1)/2, (c+1)*(c+2)/2
	return s.data[start:end:end], nil
}

func (s *Sym) Add(o *Sym) (*Sym, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := s.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Sym{shape: s.shape, data: floatsunrolled.AddTo(nil, s.data, o.data)}, nil
}

func (s *Sym) Sub(o *Sym) (*Sym, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := s.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Sym{shape: s.shape, data: floatsunrolled.SubTo(nil, s.data, o.data)}, nil
}

// Mul computes s * o as if both were dense and keeps the entries with col <= row. The product of
// two symmetric matrices is only symmetric when they commute; the entries above the diagonal are
// replaced by their mirror.
func (s *Sym) Mul(o *Sym) (*Sym, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := s.mulDims(o.shape); err != nil {
		return nil, err
	}

	n := s.rows
	res := &Sym{shape: s.shape, data: make([]float64, len(s.data))}
	for r := 0; r < n; r++ {
		for c := 0; c <= r; c++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += s.data[s.idx(k, r)] * o.data[o.idx(c, k)]
			}
			res.data[res.idx(c, r)] = sum
		}
	}
	return res, nil
}

func (s *Sym) Scale(c float64) *Sym {
	return &Sym{shape: s.shape, data: floatsunrolled.ScaleTo(nil, c, s.data)}
}

func (s *Sym) MulVec(x *array.Array) (*array.Array, error) {
	if err := s.vecDims(x); err != nil {
		return nil, err
	}

	xs := x.Slice()
	res := make([]float64, s.rows)
	for c := 0; c < s.cols; c++ {
		// the stored part of column c covers rows 0..c, the rest of row c mirrors it
		start := c * (c + 1) / 2
		col := s.data[start : start+c+1]
		floatsunrolled.AddScaled(res[:c+1], xs[c], col)
		res[c] += floatsunrolled.Dot(col[:c], xs[:c])
	}
	return array.NewFromSlice(res)
}

func (s *Sym) Copy() *Sym {
	data := make([]float64, len(s.data))
	copy(data, s.data)
	return &Sym{shape: s.shape, data: data}
}

func (s *Sym) Move() *Sym {
	res := &Sym{shape: s.shape, data: s.data}
	s.shape = shape{}
	s.data = nil
	return res
}

func (s *Sym) ToDense() *Dense {
	return toDense(s)
}

func (s *Sym) String() string {
	return render(s)
}
