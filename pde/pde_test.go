package pde

import (
	"math"
	"testing"

	"github.com/aouyang1/go-poisson/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zero(float64) float64 { return 0 }

func noForcing(_, _ float64) float64 { return 0 }

// singleEdge is zero on every edge except y = 0 where it is sin(x)
func singleEdge() Problem {
	return Problem{
		Top:     zero,
		Bottom:  math.Sin,
		Left:    zero,
		Right:   zero,
		Forcing: noForcing,
	}
}

func singleEdgeExact(x, y float64) float64 {
	return math.Sin(x) * math.Sinh(math.Pi-y) / math.Sinh(math.Pi)
}

func mustAssembler(t *testing.T) *Assembler {
	a, err := New(0, math.Pi)
	require.Nil(t, err)
	return a
}

func TestNew(t *testing.T) {
	testData := map[string]struct {
		lower float64
		upper float64
		err   error
	}{
		"valid":    {lower: 0, upper: math.Pi},
		"negative": {lower: -1, upper: 1},
		"equal":    {lower: 1, upper: 1, err: ErrInvalidBounds},
		"inverted": {lower: 2, upper: 1, err: ErrInvalidBounds},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			a, err := New(td.lower, td.upper)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			lower, upper := a.Bounds()
			assert.Equal(t, td.lower, lower)
			assert.Equal(t, td.upper, upper)
		})
	}
}

func TestAssembleErrors(t *testing.T) {
	a := mustAssembler(t)

	noTop := singleEdge()
	noTop.Top = nil
	noForce := singleEdge()
	noForce.Forcing = nil

	testData := map[string]struct {
		prob Problem
		n    int
		err  error
	}{
		"missing top":        {prob: noTop, n: 4, err: ErrMissingFunction},
		"missing forcing":    {prob: noForce, n: 4, err: ErrMissingFunction},
		"empty problem":      {prob: Problem{}, n: 4, err: ErrMissingFunction},
		"zero partitions":    {prob: singleEdge(), n: 0, err: ErrInvalidPartitions},
		"negative partition": {prob: singleEdge(), n: -3, err: ErrInvalidPartitions},
		"no interior points": {prob: singleEdge(), n: 1, err: ErrInvalidPartitions},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, _, err := a.Assemble(td.prob, td.n)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestAssembleStencil(t *testing.T) {
	a := mustAssembler(t)
	d, b, err := a.Assemble(singleEdge(), 3)
	require.Nil(t, err)

	// unknowns 0 1 on the first interior row, 2 3 on the second
	expected := [][]float64{
		{1, -0.25, -0.25, 0},
		{-0.25, 1, 0, -0.25},
		{-0.25, 0, 1, -0.25},
		{0, -0.25, -0.25, 1},
	}
	assert.Equal(t, expected, denseRows(t, d))
	assert.True(t, mat.IsSym(d))

	h := math.Pi / 3
	assert.InDeltaSlice(t, []float64{
		0.25 * math.Sin(h),
		0.25 * math.Sin(2*h),
		0,
		0,
	}, b.Slice(), 1e-15)
}

func TestAssembleForcing(t *testing.T) {
	a := mustAssembler(t)
	prob := Problem{
		Top:     zero,
		Bottom:  zero,
		Left:    zero,
		Right:   zero,
		Forcing: func(_, _ float64) float64 { return 1 },
	}

	_, b, err := a.Assemble(prob, 2)
	require.Nil(t, err)
	// four neighbours weighted by n^2/4
	assert.Equal(t, []float64{4}, b.Slice())
}

func TestAssembleSymmetric(t *testing.T) {
	a := mustAssembler(t)
	for _, n := range []int{2, 3, 5, 8} {
		d, _, err := a.Assemble(singleEdge(), n)
		require.Nil(t, err)
		assert.True(t, mat.IsSym(d), "partitions %d", n)
		assert.Equal(t, Unknowns(n), d.Rows())
	}
}

func denseRows(t *testing.T, d *mat.Dense) [][]float64 {
	rows := make([][]float64, 0, d.Rows())
	for r := 0; r < d.Rows(); r++ {
		row, err := d.Row(r)
		require.Nil(t, err)
		rows = append(rows, row)
	}
	return rows
}

func TestPoints(t *testing.T) {
	a, err := New(-1, 1)
	require.Nil(t, err)

	pts, err := a.Points(4)
	require.Nil(t, err)
	require.Len(t, pts, 9)
	assert.Equal(t, Point{X: -0.5, Y: -0.5}, pts[0])
	assert.Equal(t, Point{X: 0, Y: -0.5}, pts[1])
	assert.Equal(t, Point{X: -0.5, Y: 0}, pts[3])
	assert.Equal(t, Point{X: 0.5, Y: 0.5}, pts[8])

	for i, p := range pts {
		idx, ok := a.IndexOf(4, p)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}

	testData := map[string]Point{
		"boundary":   {X: -1, Y: 0},
		"upper edge": {X: 0, Y: 1},
		"off grid":   {X: 0.1, Y: 0},
		"outside":    {X: 3, Y: 3},
	}
	for name, p := range testData {
		t.Run(name, func(t *testing.T) {
			_, ok := a.IndexOf(4, p)
			assert.False(t, ok)
		})
	}

	_, err = a.Points(1)
	assert.ErrorIs(t, err, ErrInvalidPartitions)
}

func TestSolveSingleUnknown(t *testing.T) {
	a := mustAssembler(t)

	for _, method := range []Method{Gaussian, Cholesky, Auto} {
		t.Run(method.String(), func(t *testing.T) {
			x, err := a.Solve(nil, singleEdge(), 2, method)
			require.Nil(t, err)
			require.Equal(t, 1, x.Size())

			// a single unknown only sees a quarter of the edge value
			v, err := x.Get(0)
			require.Nil(t, err)
			assert.InDelta(t, 0.25, v, 1e-12)
		})
	}
}

func TestSolveConverges(t *testing.T) {
	a := mustAssembler(t)
	exact := singleEdgeExact(math.Pi/2, math.Pi/2)
	assert.InDelta(t, 0.19927, exact, 1e-5)

	prevErr := math.Inf(1)
	for _, n := range []int{4, 6, 8, 12} {
		x, err := a.Solve(nil, singleEdge(), n, Cholesky)
		require.Nil(t, err)

		mid, ok := a.IndexOf(n, Point{X: a.coord(n/2, n), Y: a.coord(n/2, n)})
		require.True(t, ok)
		v, err := x.Get(mid)
		require.Nil(t, err)

		diff := math.Abs(v - exact)
		assert.Less(t, diff, prevErr, "error should shrink as the grid is refined, partitions %d", n)
		prevErr = diff
		if n >= 8 {
			assert.InDelta(t, exact, v, 1e-2, "partitions %d", n)
		}
	}
}

func TestSolveMethodsAgree(t *testing.T) {
	a := mustAssembler(t)
	prob := Problem{
		Top:     zero,
		Bottom:  math.Sin,
		Left:    math.Sin,
		Right:   zero,
		Forcing: func(x, y float64) float64 { return 0.01 * x * y },
	}

	gauss, err := a.Solve(nil, prob, 6, Gaussian)
	require.Nil(t, err)
	chol, err := a.Solve(nil, prob, 6, Cholesky)
	require.Nil(t, err)
	auto, err := a.Solve(nil, prob, 6, Auto)
	require.Nil(t, err)

	assert.InDeltaSlice(t, gauss.Slice(), chol.Slice(), 1e-9)
	assert.InDeltaSlice(t, gauss.Slice(), auto.Slice(), 1e-9)

	d, b, err := a.Assemble(prob, 6)
	require.Nil(t, err)
	res, err := d.MulVec(gauss)
	require.Nil(t, err)
	assert.InDeltaSlice(t, b.Slice(), res.Slice(), 1e-6)

	_, err = a.Solve(nil, prob, 6, Method(9))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{Gaussian, Cholesky, Auto} {
		parsed, err := ParseMethod(m.String())
		require.Nil(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMethod("lu")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestGrid(t *testing.T) {
	a := mustAssembler(t)
	prob := singleEdge()

	x, err := a.Solve(nil, prob, 2, Gaussian)
	require.Nil(t, err)

	g, err := a.Grid(prob, 2, x)
	require.Nil(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 3, g.Cols())

	bottom, err := g.Row(0)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, bottom, 1e-15)

	middle, err := g.Row(1)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0}, middle, 1e-12)

	top, err := g.Row(2)
	require.Nil(t, err)
	assert.Equal(t, []float64{0, 0, 0}, top)

	_, err = a.Grid(prob, 3, x)
	assert.ErrorIs(t, err, ErrSolutionSize)
}

func TestExactGrid(t *testing.T) {
	a := mustAssembler(t)

	g, err := a.ExactGrid(4, singleEdgeExact)
	require.Nil(t, err)

	// sin(pi) is not exactly zero in floating point but snaps to it
	v, err := g.At(4, 0)
	require.Nil(t, err)
	assert.Equal(t, 0.0, v)

	v, err = g.At(2, 2)
	require.Nil(t, err)
	assert.InDelta(t, 0.19927, v, 1e-5)

	_, err = a.ExactGrid(4, nil)
	assert.ErrorIs(t, err, ErrMissingFunction)
}

func BenchmarkAssemble(b *testing.B) {
	a, err := New(0, math.Pi)
	if err != nil {
		panic(err)
	}
	prob := singleEdge()

	b.ResetTimer()
	for b.Loop() {
		if _, _, err := a.Assemble(prob, 20); err != nil {
			panic(err)
		}
	}
}
