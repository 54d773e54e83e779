package pde

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/mat"
	"github.com/aouyang1/go-poisson/solver"
)

// Method selects how the assembled system is solved
type Method int

const (
	// Gaussian solves the dense system with scaled partial pivoting
	Gaussian Method = iota

	// Cholesky packs the symmetric system and factorizes it
	Cholesky

	// Auto classifies the system, solves it in the most compact layout and falls back to Gaussian
	// elimination if the factorization fails
	Auto
)

func (m Method) String() string {
	switch m {
	case Gaussian:
		return "gaussian"
	case Cholesky:
		return "cholesky"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMethod is the inverse of Method.String
func ParseMethod(s string) (Method, error) {
	for _, m := range []Method{Gaussian, Cholesky, Auto} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%q, %w", s, ErrUnknownMethod)
}

func (m Method) MarshalText() ([]byte, error) {
	if m < Gaussian || m > Auto {
		return nil, fmt.Errorf("method %d, %w", m, ErrUnknownMethod)
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Solve assembles the system for n partitions and returns the interior values in unknown order. A
// nil solver uses the default options.
func (a *Assembler) Solve(s *solver.Solver, prob Problem, n int, method Method) (*array.Array, error) {
	d, b, err := a.Assemble(prob, n)
	if err != nil {
		return nil, err
	}
	return SolveSystem(s, d, b, method)
}

// SolveSystem solves an assembled system d x = b with the given method. A nil solver uses the default
// options.
func SolveSystem(s *solver.Solver, d *mat.Dense, b *array.Array, method Method) (*array.Array, error) {
	if s == nil {
		var err error
		if s, err = solver.New(nil); err != nil {
			return nil, err
		}
	}

	switch method {
	case Gaussian:
		return s.Gaussian(d, b)
	case Cholesky:
		sym, err := mat.ToSym(d)
		if err != nil {
			return nil, err
		}
		return s.Cholesky(sym, b)
	case Auto:
		m, err := mat.Convert(d, mat.Classify(d))
		if err != nil {
			return nil, err
		}
		x, err := s.Solve(m, b)
		if errors.Is(err, solver.ErrSingularSystem) && m.Kind() != mat.KindDense {
			slog.Warn("structured solve failed, falling back to gaussian elimination", "kind", m.Kind().String(), "error", err.Error())
			return s.Gaussian(d, b)
		}
		return x, err
	default:
		return nil, fmt.Errorf("method %d, %w", method, ErrUnknownMethod)
	}
}

// Grid places the solution x on the full (n+1) x (n+1) grid, boundary included. Column i and row j
// hold the value at (lower + i*h, lower + j*h), so row 0 is the bottom edge. Corners take the top and
// bottom edge values.
func (a *Assembler) Grid(prob Problem, n int, x *array.Array) (*mat.Dense, error) {
	if err := prob.Validate(); err != nil {
		return nil, err
	}
	if err := checkPartitions(n); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, array.ErrUninitialized
	}
	if x.Size() != Unknowns(n) {
		return nil, fmt.Errorf("got %d values for %d partitions, %w", x.Size(), n, ErrSolutionSize)
	}

	vals := x.Slice()
	g, err := mat.NewDense(n+1, n+1)
	if err != nil {
		return nil, err
	}
	for j := 0; j <= n; j++ {
		y := a.coord(j, n)
		for i := 0; i <= n; i++ {
			xc := a.coord(i, n)

			var v float64
			switch {
			case j == 0:
				v = prob.Bottom(xc)
			case j == n:
				v = prob.Top(xc)
			case i == 0:
				v = prob.Left(y)
			case i == n:
				v = prob.Right(y)
			default:
				v = vals[index(i, j, n)]
			}
			if err := g.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// ExactGrid samples a closed form solution on the same grid layout as Grid. Values within 1e-8 of
// zero are written as zero.
func (a *Assembler) ExactGrid(n int, fn func(x, y float64) float64) (*mat.Dense, error) {
	if fn == nil {
		return nil, fmt.Errorf("exact solution not set, %w", ErrMissingFunction)
	}
	if err := checkPartitions(n); err != nil {
		return nil, err
	}

	g, err := mat.NewDense(n+1, n+1)
	if err != nil {
		return nil, err
	}
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			v := fn(a.coord(i, n), a.coord(j, n))
			if math.Abs(v) < solver.DefaultEpsilon {
				v = 0
			}
			if err := g.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
