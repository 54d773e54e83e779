// Package solver solves square linear systems A x = b, picking the algorithm from the storage layout
// of A: Gaussian elimination with scaled partial pivoting for dense matrices, back and forward
// substitution for triangular matrices, Cholesky factorization for symmetric matrices and the Thomas
// algorithm for tridiagonal matrices.
package solver

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/mat"
)

const DefaultEpsilon = 1e-8

// Options configures a Solver
type Options struct {
	// Epsilon is the magnitude below which intermediate values and unknowns are snapped to exactly
	// zero. Set to 0 to disable snapping.
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

// NewDefaultOptions returns the default solver options
func NewDefaultOptions() *Options {
	return &Options{
		Epsilon: DefaultEpsilon,
	}
}

// Validate fills in defaults for nil options and checks the remaining values
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.Epsilon < 0 {
		return nil, ErrNegativeEpsilon
	}
	return o, nil
}

// Solver holds no state besides its options so a single instance can be shared and every call with
// the same inputs returns the same result.
type Solver struct {
	opt *Options
}

func New(opt *Options) (*Solver, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Solver{opt: opt}, nil
}

// Solve dispatches on the kind of m
func (s *Solver) Solve(m mat.Matrix, b *array.Array) (*array.Array, error) {
	if m == nil {
		return nil, ErrUninitialized
	}
	slog.Debug("solving linear system", "kind", m.Kind().String(), "rows", m.Rows(), "cols", m.Cols())

	var ok bool
	switch m.Kind() {
	case mat.KindDense:
		var d *mat.Dense
		if d, ok = m.(*mat.Dense); ok {
			return s.Gaussian(d, b)
		}
	case mat.KindUpper:
		var u *mat.Upper
		if u, ok = m.(*mat.Upper); ok {
			return s.BackSubstitute(u, b)
		}
	case mat.KindLower:
		var l *mat.Lower
		if l, ok = m.(*mat.Lower); ok {
			return s.ForwardSubstitute(l, b)
		}
	case mat.KindSym:
		var sym *mat.Sym
		if sym, ok = m.(*mat.Sym); ok {
			return s.Cholesky(sym, b)
		}
	case mat.KindTri:
		var t *mat.Tri
		if t, ok = m.(*mat.Tri); ok {
			return s.Thomas(t, b)
		}
	}
	return nil, fmt.Errorf("%s matrix of type %T, %w", m.Kind(), m, ErrUnsupportedKind)
}

// checkSystem verifies m is square and matches the size of b
func checkSystem(m mat.Matrix, b *array.Array) error {
	if b == nil {
		return array.ErrUninitialized
	}
	rows, cols := m.Dims()
	if rows != cols {
		return fmt.Errorf("%dx%d matrix is not square, %w", rows, cols, ErrDimensionMismatch)
	}
	if rows != b.Size() {
		return fmt.Errorf("matrix has %d rows and rhs has size %d, %w", rows, b.Size(), ErrDimensionMismatch)
	}
	return nil
}

func (s *Solver) snap(v float64) float64 {
	if math.Abs(v) <= s.opt.Epsilon {
		return 0
	}
	return v
}

func (s *Solver) snapAll(x []float64) {
	for i, v := range x {
		x[i] = s.snap(v)
	}
}
