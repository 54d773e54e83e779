package poisson

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-poisson/pde"
	"github.com/aouyang1/go-poisson/solver"
)

var ErrInvalidBounds = errors.New("upper bound must be greater than lower bound")

// Options configures the square domain and how each assembled system is solved
type Options struct {
	Lower  float64    `json:"lower"`
	Upper  float64    `json:"upper"`
	Method pde.Method `json:"method"`

	SolverOptions *solver.Options `json:"solver_options"`
}

// NewDefaultOptions solves on [0, pi] x [0, pi] with a Cholesky factorization
func NewDefaultOptions() *Options {
	return &Options{
		Lower:         0,
		Upper:         math.Pi,
		Method:        pde.Cholesky,
		SolverOptions: solver.NewDefaultOptions(),
	}
}

// Validate fills in defaults for nil options and checks the remaining values
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if !(o.Upper > o.Lower) {
		return nil, fmt.Errorf("lower %f, upper %f, %w", o.Lower, o.Upper, ErrInvalidBounds)
	}
	if _, err := o.Method.MarshalText(); err != nil {
		return nil, err
	}
	solverOpt, err := o.SolverOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid solver options, %w", err)
	}
	o.SolverOptions = solverOpt
	return o, nil
}
