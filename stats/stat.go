// Package stats measures how far a computed solution is from a reference solution or from
// satisfying its linear system.
package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/mat"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLenMismatch = errors.New("approximate and exact have different lengths")
	ErrEmpty       = errors.New("no values to compare")
	ErrNotSquare   = errors.New("grid must be square")
)

func checkLen(approx, exact []float64) error {
	if len(approx) != len(exact) {
		return fmt.Errorf("got %d and %d values, %w", len(approx), len(exact), ErrLenMismatch)
	}
	if len(approx) == 0 {
		return ErrEmpty
	}
	return nil
}

// MaxAbsError is the largest elementwise absolute difference
func MaxAbsError(approx, exact []float64) (float64, error) {
	if err := checkLen(approx, exact); err != nil {
		return 0, err
	}
	return floats.Distance(approx, exact, math.Inf(1)), nil
}

// RMSE is the root mean squared error
func RMSE(approx, exact []float64) (float64, error) {
	if err := checkLen(approx, exact); err != nil {
		return 0, err
	}
	sq := make([]float64, len(approx))
	floats.SubTo(sq, approx, exact)
	floats.Mul(sq, sq)
	return math.Sqrt(stat.Mean(sq, nil)), nil
}

// GridL2Error is the discrete 2-norm of the difference between two (n+1) x (n+1) grids,
// sqrt(h^2 * sum(diff^2)) with h = 1/n.
func GridL2Error(approx, exact *mat.Dense) (float64, error) {
	if approx == nil || exact == nil {
		return 0, mat.ErrUninitialized
	}
	if approx.Rows() != approx.Cols() {
		return 0, fmt.Errorf("got %dx%d grid, %w", approx.Rows(), approx.Cols(), ErrNotSquare)
	}
	if approx.Rows() != exact.Rows() || approx.Cols() != exact.Cols() {
		return 0, fmt.Errorf("got %dx%d and %dx%d grids, %w", approx.Rows(), approx.Cols(), exact.Rows(), exact.Cols(), ErrLenMismatch)
	}
	n := approx.Rows() - 1
	if n < 1 {
		return 0, ErrEmpty
	}

	var sum float64
	for c := 0; c < approx.Cols(); c++ {
		a, err := approx.ColView(c)
		if err != nil {
			return 0, err
		}
		e, err := exact.ColView(c)
		if err != nil {
			return 0, err
		}
		d := floats.Distance(a, e, 2)
		sum += d * d
	}
	return math.Sqrt(sum) / float64(n), nil
}

// ResidualNorm is the 2-norm of m x - b
func ResidualNorm(m mat.Matrix, x, b *array.Array) (float64, error) {
	if m == nil {
		return 0, mat.ErrUninitialized
	}
	ax, err := m.MulVec(x)
	if err != nil {
		return 0, err
	}
	r, err := ax.Sub(b)
	if err != nil {
		return 0, err
	}
	return floats.Norm(r.Slice(), 2), nil
}
