// Package poisson solves Poisson problems on a square with a five point finite difference scheme and
// compares the discrete solution against a known closed form.
package poisson

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aouyang1/go-poisson/pde"
	"github.com/aouyang1/go-poisson/solver"
)

// Poisson discretizes and solves problems on a fixed square domain
type Poisson struct {
	opt *Options

	assembler *pde.Assembler
	solver    *solver.Solver
}

// New creates a new instance of Poisson using the provided options. If no options are provided a
// default is used.
func New(opt *Options) (*Poisson, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	assembler, err := pde.New(opt.Lower, opt.Upper)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize assembler, %w", err)
	}
	s, err := solver.New(opt.SolverOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize solver, %w", err)
	}
	return &Poisson{
		opt:       opt,
		assembler: assembler,
		solver:    s,
	}, nil
}

// Options returns the validated options in use
func (p *Poisson) Options() *Options {
	return p.opt
}

// Solve discretizes prob with n partitions per side, solves it with the configured method and scores
// the result against the exact solution.
func (p *Poisson) Solve(prob Problem, n int) (*Results, error) {
	return p.solve(prob, n, p.opt.Method)
}

func (p *Poisson) solve(prob Problem, n int, method pde.Method) (*Results, error) {
	eq, err := prob.Equation(p.opt.Lower, p.opt.Upper)
	if err != nil {
		return nil, err
	}

	d, b, err := p.assembler.Assemble(eq, n)
	if err != nil {
		return nil, fmt.Errorf("unable to assemble %d partitions, %w", n, err)
	}

	start := time.Now()
	x, err := pde.SolveSystem(p.solver, d, b, method)
	if err != nil {
		return nil, fmt.Errorf("unable to solve %d unknowns with %s, %w", b.Size(), method, err)
	}
	elapsed := time.Since(start)

	grid, err := p.assembler.Grid(eq, n, x)
	if err != nil {
		return nil, err
	}
	exact, err := p.assembler.ExactGrid(n, prob.Exact)
	if err != nil {
		return nil, err
	}

	scores, err := NewScores(grid, exact)
	if err != nil {
		return nil, err
	}
	if scores.Residual, err = residualScore(d, x, b); err != nil {
		return nil, err
	}

	gridRes, err := gridRows(grid)
	if err != nil {
		return nil, err
	}
	exactRes, err := gridRows(exact)
	if err != nil {
		return nil, err
	}

	slog.Info("solved poisson problem",
		"problem", prob.Name,
		"partitions", n,
		"method", method.String(),
		"elapsed", elapsed,
		"grid_l2", scores.GridL2,
		"residual", scores.Residual,
	)

	return &Results{
		Problem:    prob.Name,
		Partitions: n,
		Lower:      p.opt.Lower,
		Upper:      p.opt.Upper,
		Method:     method,
		Unknowns:   x.Size(),
		Elapsed:    elapsed,
		Solution:   x.Slice(),
		Grid:       gridRes,
		Exact:      exactRes,
		Scores:     scores,
	}, nil
}
