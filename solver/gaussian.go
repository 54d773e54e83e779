package solver

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/floatsunrolled"
	"github.com/aouyang1/go-poisson/mat"
)

// Gaussian solves a x = b by Gaussian elimination with scaled partial pivoting on the augmented
// matrix [a | b]. Each row is scaled by its largest coefficient magnitude and the pivot for step i
// is the remaining row with the largest |a(i, row)| / scale(row), first one wins on ties. a and b
// are not modified.
func (s *Solver) Gaussian(a *mat.Dense, b *array.Array) (*array.Array, error) {
	if a == nil {
		return nil, ErrUninitialized
	}
	if err := checkSystem(a, b); err != nil {
		return nil, err
	}

	n := a.Rows()
	aug, err := a.Augment(b)
	if err != nil {
		return nil, err
	}

	cols := make([][]float64, n+1)
	for c := range cols {
		if cols[c], err = aug.ColView(c); err != nil {
			return nil, err
		}
	}

	scale := make([]float64, n)
	for _, col := range cols[:n] {
		for r, v := range col {
			scale[r] = math.Max(scale[r], math.Abs(v))
		}
	}
	for r, v := range scale {
		if v == 0 {
			return nil, fmt.Errorf("row %d has no nonzero coefficient, %w", r, ErrSingularSystem)
		}
	}

	ratios := make([]float64, n)
	factors := make([]float64, n)
	for i := 0; i < n; i++ {
		pivotCol := cols[i]
		for r := i; r < n; r++ {
			ratios[r] = math.Abs(pivotCol[r]) / scale[r]
		}
		ratioArr, err := array.NewFromSlice(ratios)
		if err != nil {
			return nil, err
		}
		p, err := array.MaxIndex(ratioArr, i)
		if err != nil {
			return nil, err
		}
		if pivotCol[p] == 0 {
			return nil, fmt.Errorf("no nonzero pivot in column %d, %w", i, ErrSingularSystem)
		}
		if err := aug.SwapRows(i, p); err != nil {
			return nil, err
		}
		scale[i], scale[p] = scale[p], scale[i]

		pivot := pivotCol[i]
		for r := i + 1; r < n; r++ {
			factors[r] = pivotCol[r] / pivot
			pivotCol[r] = 0
		}
		for _, col := range cols[i+1:] {
			v := col[i]
			if v == 0 {
				continue
			}
			floatsunrolled.AddScaled(col[i+1:], -v, factors[i+1:])
			s.snapAll(col[i+1:])
		}
	}

	x := make([]float64, n)
	copy(x, cols[n])
	err = s.backward(x, func(i int) []float64 {
		return cols[i][:i+1]
	})
	if err != nil {
		return nil, err
	}
	return array.NewFromSlice(x)
}
