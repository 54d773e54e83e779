package solver

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
	"github.com/aouyang1/go-poisson/mat"
)

// Factorize computes the lower triangular l with a = l * lᵗ, one row at a time. A matrix that is not
// positive definite fails with ErrSingularSystem before any factor is returned.
func Factorize(a *mat.Sym) (*mat.Lower, error) {
	if a == nil {
		return nil, ErrUninitialized
	}

	n := a.Rows()
	rows := make([][]float64, n)
	for k := 0; k < n; k++ {
		// stored column k of a symmetric matrix is row k up to the diagonal
		ak, err := a.ColView(k)
		if err != nil {
			return nil, err
		}

		lk := make([]float64, k+1)
		for i := 0; i < k; i++ {
			li := rows[i]
			lk[i] = (ak[i] - floatsunrolled.Dot(li[:i], lk[:i])) / li[i]
		}
		d := ak[k] - floatsunrolled.Dot(lk[:k], lk[:k])
		if d <= 0 || math.IsNaN(d) {
			return nil, fmt.Errorf("non positive pivot %v at row %d, %w", d, k, ErrSingularSystem)
		}
		lk[k] = math.Sqrt(d)
		rows[k] = lk
	}

	l, err := mat.NewLower(n, n)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, v := range row {
			if err := l.Set(c, r, v); err != nil {
				return nil, err
			}
		}
	}
	return l, nil
}

// Cholesky solves a x = b for a symmetric positive definite a by solving l y = b and then lᵗ x = y
func (s *Solver) Cholesky(a *mat.Sym, b *array.Array) (*array.Array, error) {
	if a == nil {
		return nil, ErrUninitialized
	}
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}

	l, err := Factorize(a)
	if err != nil {
		return nil, err
	}
	y, err := s.ForwardSubstitute(l, b)
	if err != nil {
		return nil, err
	}
	return s.BackSubstitute(l.Transpose(), y)
}
