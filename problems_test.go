package poisson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProblem(t *testing.T) {
	names := ListProblems()
	assert.Equal(t, []string{"constant", "harmonic-sin", "saddle", "single-edge"}, names)

	for _, name := range names {
		p, err := GetProblem(name)
		require.Nil(t, err)
		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.Description)
	}

	_, err := GetProblem("missing")
	assert.ErrorIs(t, err, ErrUnknownProblem)
}

func TestProblemsHarmonic(t *testing.T) {
	h := 1e-3
	for _, name := range ListProblems() {
		t.Run(name, func(t *testing.T) {
			u := mustProblem(t, name).Exact
			for _, pt := range [][2]float64{{0.3, 0.7}, {1.5, 1.5}, {2.8, 0.4}} {
				x, y := pt[0], pt[1]
				lap := (u(x+h, y) + u(x-h, y) + u(x, y+h) + u(x, y-h) - 4*u(x, y)) / (h * h)
				assert.InDelta(t, 0.0, lap, 1e-4)
			}
		})
	}
}

func TestProblemEquation(t *testing.T) {
	p := mustProblem(t, "harmonic-sin")
	eq, err := p.Equation(0, math.Pi)
	require.Nil(t, err)
	require.Nil(t, eq.Validate())

	assert.InDelta(t, 1.0, eq.Bottom(math.Pi/2), 1e-12)
	assert.InDelta(t, 1.0, eq.Left(math.Pi/2), 1e-12)
	assert.InDelta(t, 0.0, eq.Top(math.Pi/2), 1e-12)
	assert.InDelta(t, 0.0, eq.Right(math.Pi/2), 1e-12)
	assert.Equal(t, 0.0, eq.Forcing(1, 1))

	saddle, err := mustProblem(t, "saddle").Equation(-1, 2)
	require.Nil(t, err)
	assert.Equal(t, 1.0-4.0, saddle.Top(1))
	assert.Equal(t, 1.0-1.0, saddle.Bottom(1))
	assert.Equal(t, 1.0-0.25, saddle.Left(0.5))
	assert.Equal(t, 4.0-0.25, saddle.Right(0.5))

	_, err = Problem{Name: "empty"}.Equation(0, 1)
	assert.ErrorIs(t, err, ErrMissingExact)
}
