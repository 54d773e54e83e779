package mat

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
)

// Tri is a square tridiagonal matrix stored as three bands. sub[i] is (col i, row i+1), diag[i] is
// (col i, row i) and super[i] is (col i+1, row i).
type Tri struct {
	shape
	sub   []float64
	diag  []float64
	super []float64
}

// NewTri requires rows == cols
func NewTri(rows, cols int) (*Tri, error) {
	s, err := newSquareShape(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Tri{
		shape: s,
		sub:   make([]float64, rows-1),
		diag:  make([]float64, rows),
		super: make([]float64, rows-1),
	}, nil
}

// NewTriFromBands copies the three bands into a new matrix. The off diagonals must be one shorter
// than the diagonal.
func NewTriFromBands(sub, diag, super []float64) (*Tri, error) {
	n := len(diag)
	if n == 0 {
		return nil, fmt.Errorf("empty diagonal, %w", ErrInvalidSize)
	}
	if len(sub) != n-1 || len(super) != n-1 {
		return nil, fmt.Errorf("diagonal of %d with bands of %d and %d, %w", n, len(sub), len(super), ErrDimensionMismatch)
	}

	t, err := NewTri(n, n)
	if err != nil {
		return nil, err
	}
	copy(t.sub, sub)
	copy(t.diag, diag)
	copy(t.super, super)
	return t, nil
}

func (t *Tri) Kind() Kind {
	return KindTri
}

// Bands returns copies of the sub, main and super diagonals
func (t *Tri) Bands() (sub, diag, super []float64) {
	sub = make([]float64, len(t.sub))
	diag = make([]float64, len(t.diag))
	super = make([]float64, len(t.super))
	copy(sub, t.sub)
	copy(diag, t.diag)
	copy(super, t.super)
	return sub, diag, super
}

// band returns the backing slice and index for (col, row), or nil outside the band
func (t *Tri) band(col, row int) ([]float64, int) {
	switch col - row {
	case 0:
		return t.diag, row
	case 1:
		return t.super, row
	case -1:
		return t.sub, col
	default:
		return nil, 0
	}
}

func (t *Tri) at(col, row int) float64 {
	b, i := t.band(col, row)
	if b == nil {
		return 0.0
	}
	return b[i]
}

func (t *Tri) At(col, row int) (float64, error) {
	if err := t.checkBounds(col, row); err != nil {
		return 0.0, err
	}
	return t.at(col, row), nil
}

func (t *Tri) Set(col, row int, v float64) error {
	if err := t.checkBounds(col, row); err != nil {
		return err
	}
	b, i := t.band(col, row)
	if b == nil {
		return fmt.Errorf("tridiagonal (col %d, row %d), %w", col, row, ErrShapeViolation)
	}
	b[i] = v
	return nil
}

func (t *Tri) Add(o *Tri) (*Tri, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := t.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Tri{
		shape: t.shape,
		sub:   floatsunrolled.AddTo(nil, t.sub, o.sub),
		diag:  floatsunrolled.AddTo(nil, t.diag, o.diag),
		super: floatsunrolled.AddTo(nil, t.super, o.super),
	}, nil
}

func (t *Tri) Sub(o *Tri) (*Tri, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := t.sameDims(o.shape); err != nil {
		return nil, err
	}
	return &Tri{
		shape: t.shape,
		sub:   floatsunrolled.SubTo(nil, t.sub, o.sub),
		diag:  floatsunrolled.SubTo(nil, t.diag, o.diag),
		super: floatsunrolled.SubTo(nil, t.super, o.super),
	}, nil
}

// Mul computes the band product t * o. The product of two tridiagonal matrices is pentadiagonal in
// general, so any nonzero entry two off the diagonal fails with ErrShapeViolation.
func (t *Tri) Mul(o *Tri) (*Tri, error) {
	if o == nil {
		return nil, ErrUninitialized
	}
	if err := t.mulDims(o.shape); err != nil {
		return nil, err
	}

	n := t.rows
	res, err := NewTri(n, n)
	if err != nil {
		return nil, err
	}
	for r := 0; r < n; r++ {
		for c := max(r-2, 0); c <= min(r+2, n-1); c++ {
			var sum float64
			for k := max(r, c) - 1; k <= min(r, c)+1; k++ {
				if k < 0 || k >= n {
					continue
				}
				sum += t.at(k, r) * o.at(c, k)
			}
			if b, i := res.band(c, r); b != nil {
				b[i] = sum
				continue
			}
			if sum != 0 {
				return nil, fmt.Errorf("product has %v at (col %d, row %d), %w", sum, c, r, ErrShapeViolation)
			}
		}
	}
	return res, nil
}

func (t *Tri) Scale(c float64) *Tri {
	return &Tri{
		shape: t.shape,
		sub:   floatsunrolled.ScaleTo(nil, c, t.sub),
		diag:  floatsunrolled.ScaleTo(nil, c, t.diag),
		super: floatsunrolled.ScaleTo(nil, c, t.super),
	}
}

// MulVec sums at most three terms per row
func (t *Tri) MulVec(x *array.Array) (*array.Array, error) {
	if err := t.vecDims(x); err != nil {
		return nil, err
	}

	xs := x.Slice()
	n := t.rows
	res := make([]float64, n)
	for r := 0; r < n; r++ {
		v := t.diag[r] * xs[r]
		if r > 0 {
			v += t.sub[r-1] * xs[r-1]
		}
		if r < n-1 {
			v += t.super[r] * xs[r+1]
		}
		res[r] = v
	}
	return array.NewFromSlice(res)
}

func (t *Tri) Copy() *Tri {
	sub, diag, super := t.Bands()
	return &Tri{shape: t.shape, sub: sub, diag: diag, super: super}
}

func (t *Tri) Move() *Tri {
	res := &Tri{shape: t.shape, sub: t.sub, diag: t.diag, super: t.super}
	t.shape = shape{}
	t.sub, t.diag, t.super = nil, nil, nil
	return res
}

func (t *Tri) ToDense() *Dense {
	return toDense(t)
}

func (t *Tri) String() string {
	return render(t)
}
