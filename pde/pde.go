// Package pde discretizes Poisson's equation on a square domain with Dirichlet boundaries using the
// five point stencil and solves the resulting linear system for the interior grid values.
package pde

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-poisson/array"
	"github.com/aouyang1/go-poisson/mat"
)

var (
	ErrInvalidBounds     = errors.New("upper bound must be greater than lower bound")
	ErrMissingFunction   = errors.New("missing boundary or forcing function")
	ErrInvalidPartitions = errors.New("partitions must be at least 2")
	ErrSolutionSize      = errors.New("solution size does not match the number of interior points")
	ErrUnknownMethod     = errors.New("unknown solve method")
)

// BoundaryFunc returns the fixed value along one edge of the domain given the coordinate that varies
// along that edge
type BoundaryFunc func(float64) float64

// ForcingFunc is the right hand side f(x, y) of the equation
type ForcingFunc func(x, y float64) float64

// Problem is the set of edge conditions and forcing for a single Poisson problem. Top and Bottom
// are the edges y = upper and y = lower and take x, Left and Right are the edges x = lower and
// x = upper and take y.
type Problem struct {
	Top     BoundaryFunc
	Bottom  BoundaryFunc
	Left    BoundaryFunc
	Right   BoundaryFunc
	Forcing ForcingFunc
}

func (p Problem) Validate() error {
	missing := make([]string, 0, 5)
	if p.Top == nil {
		missing = append(missing, "top")
	}
	if p.Bottom == nil {
		missing = append(missing, "bottom")
	}
	if p.Left == nil {
		missing = append(missing, "left")
	}
	if p.Right == nil {
		missing = append(missing, "right")
	}
	if p.Forcing == nil {
		missing = append(missing, "forcing")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%v not set, %w", missing, ErrMissingFunction)
	}
	return nil
}

// Point is a grid coordinate in domain units. Points are compared exactly.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// Assembler builds the linear system for problems on the square [lower, upper] x [lower, upper]
type Assembler struct {
	lower float64
	upper float64
}

func New(lower, upper float64) (*Assembler, error) {
	if upper <= lower {
		return nil, fmt.Errorf("got lower %v and upper %v, %w", lower, upper, ErrInvalidBounds)
	}
	return &Assembler{lower: lower, upper: upper}, nil
}

func (a *Assembler) Bounds() (lower, upper float64) {
	return a.lower, a.upper
}

// Step is the grid spacing for n partitions per side
func (a *Assembler) Step(n int) float64 {
	return (a.upper - a.lower) / float64(n)
}

// coord returns the k-th grid coordinate out of n partitions. The last one is the upper bound
// exactly so boundary lookups never depend on rounding.
func (a *Assembler) coord(k, n int) float64 {
	if k == n {
		return a.upper
	}
	return a.lower + float64(k)*a.Step(n)
}

func checkPartitions(n int) error {
	if n < 2 {
		return fmt.Errorf("got %d partitions, %w", n, ErrInvalidPartitions)
	}
	return nil
}

// Unknowns is the number of interior points, (n-1)^2
func Unknowns(n int) int {
	return (n - 1) * (n - 1)
}

// index maps the interior grid position (i, j), both in [1, n-1], to its unknown
func index(i, j, n int) int {
	return (j-1)*(n-1) + (i - 1)
}

// Points lists the interior points in unknown order, row by row from the bottom of the domain
func (a *Assembler) Points(n int) ([]Point, error) {
	if err := checkPartitions(n); err != nil {
		return nil, err
	}
	pts := make([]Point, 0, Unknowns(n))
	for j := 1; j < n; j++ {
		for i := 1; i < n; i++ {
			pts = append(pts, Point{X: a.coord(i, n), Y: a.coord(j, n)})
		}
	}
	return pts, nil
}

// IndexOf returns the unknown owned by p, or false if p is not exactly an interior grid point
func (a *Assembler) IndexOf(n int, p Point) (int, bool) {
	if n < 2 {
		return 0, false
	}
	h := a.Step(n)
	i := int((p.X-a.lower)/h + 0.5)
	j := int((p.Y-a.lower)/h + 0.5)
	if i < 1 || i >= n || j < 1 || j >= n {
		return 0, false
	}
	if !p.Equal(Point{X: a.coord(i, n), Y: a.coord(j, n)}) {
		return 0, false
	}
	return index(i, j, n), true
}

// Assemble builds A and b for n partitions per side. Row k of A is the stencil centred on unknown k:
// 1 on itself and -1/4 on each interior neighbour. A neighbour on an edge contributes a quarter of its
// boundary value to b, and the forcing summed over the four neighbours is added with weight n^2/4.
func (a *Assembler) Assemble(prob Problem, n int) (*mat.Dense, *array.Array, error) {
	if err := prob.Validate(); err != nil {
		return nil, nil, err
	}
	if err := checkPartitions(n); err != nil {
		return nil, nil, err
	}

	size := Unknowns(n)
	d, err := mat.NewDense(size, size)
	if err != nil {
		return nil, nil, err
	}
	rhs := make([]float64, size)
	forcingScale := float64(n*n) / 4.0

	for j := 1; j < n; j++ {
		for i := 1; i < n; i++ {
			row := index(i, j, n)
			if err := d.Set(row, row, 1); err != nil {
				return nil, nil, err
			}

			var boundary, forcing float64
			for _, nb := range [4][2]int{{i - 1, j}, {i + 1, j}, {i, j - 1}, {i, j + 1}} {
				ni, nj := nb[0], nb[1]
				x, y := a.coord(ni, n), a.coord(nj, n)
				forcing += prob.Forcing(x, y)

				switch {
				case ni == 0:
					boundary += prob.Left(y)
				case ni == n:
					boundary += prob.Right(y)
				case nj == 0:
					boundary += prob.Bottom(x)
				case nj == n:
					boundary += prob.Top(x)
				default:
					if err := d.Set(index(ni, nj, n), row, -0.25); err != nil {
						return nil, nil, err
					}
				}
			}
			rhs[row] = 0.25*boundary + forcingScale*forcing
		}
	}

	b, err := array.NewFromSlice(rhs)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("assembled poisson system", "partitions", n, "unknowns", size)
	return d, b, nil
}
