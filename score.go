package poisson

import (
	"fmt"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/mat"
	"github.com/aouyang1/go-poisson/stats"
)

// Scores compares a solved grid against the exact grid. Residual is always set, the grid errors only
// when an exact solution is known.
type Scores struct {
	GridL2   float64 `json:"grid_l2"`  // discrete L2 norm of the grid error
	MaxAbs   float64 `json:"max_abs"`  // largest absolute grid error
	RMSE     float64 `json:"rmse"`     // root mean squared grid error
	Residual float64 `json:"residual"` // 2-norm of A x - b
}

// NewScores computes the grid errors of approx against exact
func NewScores(approx, exact *mat.Dense) (*Scores, error) {
	if approx == nil || exact == nil {
		return nil, mat.ErrUninitialized
	}
	l2, err := stats.GridL2Error(approx, exact)
	if err != nil {
		return nil, fmt.Errorf("unable to compute grid l2 error, %w", err)
	}

	a := approx.Data()
	e := exact.Data()
	maxAbs, err := stats.MaxAbsError(a, e)
	if err != nil {
		return nil, fmt.Errorf("unable to compute max absolute error, %w", err)
	}
	rmse, err := stats.RMSE(a, e)
	if err != nil {
		return nil, fmt.Errorf("unable to compute root mean squared error, %w", err)
	}
	return &Scores{
		GridL2: l2,
		MaxAbs: maxAbs,
		RMSE:   rmse,
	}, nil
}

func residualScore(m mat.Matrix, x, b *array.Array) (float64, error) {
	res, err := stats.ResidualNorm(m, x, b)
	if err != nil {
		return 0, fmt.Errorf("unable to compute residual norm, %w", err)
	}
	return res, nil
}
