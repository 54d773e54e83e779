package solver

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
	"github.com/aouyang1/go-poisson/mat"
)

// BackSubstitute solves u x = b from the last unknown to the first
func (s *Solver) BackSubstitute(u *mat.Upper, b *array.Array) (*array.Array, error) {
	if u == nil {
		return nil, ErrUninitialized
	}
	if err := checkSystem(u, b); err != nil {
		return nil, err
	}

	x := b.Slice()
	err := s.backward(x, func(i int) []float64 {
		col, _ := u.ColView(i)
		return col
	})
	if err != nil {
		return nil, err
	}
	return array.NewFromSlice(x)
}

// ForwardSubstitute solves l x = b from the first unknown to the last
func (s *Solver) ForwardSubstitute(l *mat.Lower, b *array.Array) (*array.Array, error) {
	if l == nil {
		return nil, ErrUninitialized
	}
	if err := checkSystem(l, b); err != nil {
		return nil, err
	}

	x := b.Slice()
	err := s.forward(x, func(i int) []float64 {
		col, _ := l.ColView(i)
		return col
	})
	if err != nil {
		return nil, err
	}
	return array.NewFromSlice(x)
}

// backward overwrites the right hand side x with the solution of an upper triangular system. col(i)
// returns rows 0..i of column i. Once x[i] is known its contribution is removed from every row above
// it, one column at a time.
func (s *Solver) backward(x []float64, col func(i int) []float64) error {
	for i := len(x) - 1; i >= 0; i-- {
		c := col(i)
		d := c[i]
		if d == 0 {
			return fmt.Errorf("zero diagonal at row %d, %w", i, ErrSingularSystem)
		}
		x[i] = s.snap(x[i] / d)
		if x[i] != 0 {
			floatsunrolled.AddScaled(x[:i], -x[i], c[:i])
		}
	}
	return nil
}

// forward is the lower triangular mirror of backward. col(i) returns rows i..n-1 of column i.
func (s *Solver) forward(x []float64, col func(i int) []float64) error {
	for i := range x {
		c := col(i)
		d := c[0]
		if d == 0 {
			return fmt.Errorf("zero diagonal at row %d, %w", i, ErrSingularSystem)
		}
		x[i] = s.snap(x[i] / d)
		if x[i] != 0 {
			floatsunrolled.AddScaled(x[i+1:], -x[i], c[1:])
		}
	}
	return nil
}
