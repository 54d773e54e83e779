package solver

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/mat"
)

// Thomas solves a tridiagonal system in O(n). The forward sweep eliminates the sub diagonal using
// copies of the bands so t is not modified.
func (s *Solver) Thomas(t *mat.Tri, b *array.Array) (*array.Array, error) {
	if t == nil {
		return nil, ErrUninitialized
	}
	if err := checkSystem(t, b); err != nil {
		return nil, err
	}

	sub, diag, super := t.Bands()
	rhs := b.Slice()
	n := len(diag)

	for i := 1; i < n; i++ {
		if diag[i-1] == 0 {
			return nil, fmt.Errorf("zero pivot at row %d, %w", i-1, ErrSingularSystem)
		}
		m := sub[i-1] / diag[i-1]
		diag[i] -= m * super[i-1]
		rhs[i] -= m * rhs[i-1]
	}
	if diag[n-1] == 0 {
		return nil, fmt.Errorf("zero pivot at row %d, %w", n-1, ErrSingularSystem)
	}

	x := make([]float64, n)
	x[n-1] = rhs[n-1] / diag[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = (rhs[i] - super[i]*x[i+1]) / diag[i]
	}
	return array.NewFromSlice(x)
}
