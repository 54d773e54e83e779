package poisson

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/aouyang1/go-poisson/pde"
)

var (
	ErrUnknownProblem = errors.New("unknown problem")
	ErrMissingExact   = errors.New("problem has no exact solution")
)

// Problem is a Laplace problem on a square whose boundary values are sampled from a known harmonic
// solution, so the same problem can be posed on any domain.
type Problem struct {
	Name        string
	Description string
	Exact       func(x, y float64) float64
}

// Equation builds the boundary value problem with the edges of [lower, upper] x [lower, upper]
// taken from the exact solution and no forcing.
func (p Problem) Equation(lower, upper float64) (pde.Problem, error) {
	if p.Exact == nil {
		return pde.Problem{}, fmt.Errorf("problem %q, %w", p.Name, ErrMissingExact)
	}
	exact := p.Exact
	return pde.Problem{
		Top:     func(x float64) float64 { return exact(x, upper) },
		Bottom:  func(x float64) float64 { return exact(x, lower) },
		Left:    func(y float64) float64 { return exact(lower, y) },
		Right:   func(y float64) float64 { return exact(upper, y) },
		Forcing: func(x, y float64) float64 { return 0 },
	}, nil
}

var problems = map[string]Problem{
	"harmonic-sin": {
		Name:        "harmonic-sin",
		Description: "sin(x) on the bottom and left edges of [0, pi]^2",
		Exact: func(x, y float64) float64 {
			return (math.Sin(x)*math.Sinh(math.Pi-y) + math.Sin(y)*math.Sinh(math.Pi-x)) / math.Sinh(math.Pi)
		},
	},
	"single-edge": {
		Name:        "single-edge",
		Description: "sin(x) on the bottom edge of [0, pi]^2",
		Exact: func(x, y float64) float64 {
			return math.Sin(x) * math.Sinh(math.Pi-y) / math.Sinh(math.Pi)
		},
	},
	"saddle": {
		Name:        "saddle",
		Description: "x^2 - y^2, reproduced exactly by the five point stencil",
		Exact: func(x, y float64) float64 {
			return x*x - y*y
		},
	},
	"constant": {
		Name:        "constant",
		Description: "one on every edge",
		Exact: func(x, y float64) float64 {
			return 1
		},
	},
}

// GetProblem looks up a registered problem by name
func GetProblem(name string) (Problem, error) {
	p, ok := problems[name]
	if !ok {
		return Problem{}, fmt.Errorf("%q, %w", name, ErrUnknownProblem)
	}
	return p, nil
}

// ListProblems returns the registered problem names in sorted order
func ListProblems() []string {
	return slices.Sorted(maps.Keys(problems))
}
