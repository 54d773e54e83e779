package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func gonumMul(t *testing.T, a, b Matrix) *Dense {
	var p mat.Dense
	p.Mul(Gonum(a), Gonum(b))
	d, err := NewDenseFromGonum(&p)
	require.Nil(t, err)
	return d
}

func assertDenseInDelta(t *testing.T, expected, actual *Dense, delta float64) {
	require.Equal(t, expected.rows, actual.rows)
	require.Equal(t, expected.cols, actual.cols)
	assert.InDeltaSlice(t, expected.data, actual.data, delta)
}

func TestDenseArith(t *testing.T) {
	a := mustDense(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	b := mustDense(t, [][]float64{
		{7, 8},
		{9, 10},
		{11, 12},
	})

	p, err := a.Mul(b)
	require.Nil(t, err)
	assert.Equal(t, mustDense(t, [][]float64{{58, 64}, {139, 154}}), p)
	assertDenseInDelta(t, gonumMul(t, a, b), p, 1e-12)

	_, err = a.Mul(a)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	sum, err := a.Add(a)
	require.Nil(t, err)
	assert.Equal(t, a.Scale(2), sum)

	diff, err := sum.Sub(a)
	require.Nil(t, err)
	assert.Equal(t, a, diff)

	_, err = a.Add(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	assert.Equal(t, a, a.Transpose().Transpose())
	assert.Equal(t, mustDense(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}), a.Transpose())
}

func TestTriangularMul(t *testing.T) {
	ua := mustDense(t, [][]float64{
		{1, 2, 3, 4},
		{0, 5, 6, 7},
		{0, 0, 8, 9},
	})
	ub := mustDense(t, [][]float64{
		{2, 1, 0, 3},
		{0, 4, 1, 1},
		{0, 0, 3, 2},
		{0, 0, 0, 5},
	})

	u1, err := ToUpper(ua)
	require.Nil(t, err)
	u2, err := ToUpper(ub)
	require.Nil(t, err)
	up, err := u1.Mul(u2)
	require.Nil(t, err)
	assertDenseInDelta(t, gonumMul(t, ua, ub), up.ToDense(), 1e-12)

	l1 := u2.Transpose()
	l2 := u1.Transpose()
	lp, err := l1.Mul(l2)
	require.Nil(t, err)
	assertDenseInDelta(t, gonumMul(t, ub.Transpose(), ua.Transpose()), lp.ToDense(), 1e-12)

	_, err = u1.Mul(u1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = l2.Mul(l2)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	usum, err := u2.Add(u2)
	require.Nil(t, err)
	assert.Equal(t, u2.Scale(2), usum)
	ldiff, err := l1.Sub(l1)
	require.Nil(t, err)
	assert.Equal(t, l1.Scale(0), ldiff)
}

func TestSymMul(t *testing.T) {
	a := mustDense(t, [][]float64{
		{4, 1, 2},
		{1, 3, 0},
		{2, 0, 5},
	})
	b := mustDense(t, [][]float64{
		{1, 2, 0},
		{2, 1, 1},
		{0, 1, 2},
	})
	sa, err := ToSym(a)
	require.Nil(t, err)
	sb, err := ToSym(b)
	require.Nil(t, err)

	p, err := sa.Mul(sb)
	require.Nil(t, err)
	expected := gonumMul(t, a, b)
	for c := 0; c < 3; c++ {
		for r := c; r < 3; r++ {
			v, err := p.At(c, r)
			require.Nil(t, err)
			ev, err := expected.At(c, r)
			require.Nil(t, err)
			assert.InDelta(t, ev, v, 1e-12, "col %d row %d", c, r)
		}
	}

	sum, err := sa.Add(sb)
	require.Nil(t, err)
	dsum, err := a.Add(b)
	require.Nil(t, err)
	assert.Equal(t, dsum, sum.ToDense())
}

func TestTriMul(t *testing.T) {
	diag, err := NewTriFromBands([]float64{0, 0}, []float64{2, 3, 4}, []float64{0, 0})
	require.Nil(t, err)
	tri, err := NewTriFromBands([]float64{1, 2}, []float64{3, 4, 5}, []float64{6, 7})
	require.Nil(t, err)

	p, err := diag.Mul(tri)
	require.Nil(t, err)
	assertDenseInDelta(t, gonumMul(t, diag, tri), p.ToDense(), 1e-12)

	_, err = tri.Mul(tri)
	assert.ErrorIs(t, err, ErrShapeViolation, "a full band squared fills the second diagonal")

	sum, err := tri.Add(diag)
	require.Nil(t, err)
	_, d, _ := sum.Bands()
	assert.Equal(t, []float64{5, 7, 9}, d)
}

func TestMulVec(t *testing.T) {
	dense := mustDense(t, [][]float64{
		{4, 1, 0, 0},
		{1, 4, 1, 0},
		{0, 1, 4, 1},
		{0, 0, 1, 4},
	})
	upper := mustDense(t, [][]float64{
		{4, 1, 2, 0},
		{0, 4, 1, 3},
		{0, 0, 4, 1},
		{0, 0, 0, 4},
	})
	x := mustArray(t, []float64{1, -2, 3, 0.5})

	u, err := ToUpper(upper)
	require.Nil(t, err)
	l, err := ToLower(upper.Transpose())
	require.Nil(t, err)
	s, err := ToSym(dense)
	require.Nil(t, err)
	tri, err := ToTri(dense)
	require.Nil(t, err)

	testData := map[string]struct {
		m     Matrix
		dense *Dense
	}{
		"dense":       {m: dense, dense: dense},
		"upper":       {m: u, dense: upper},
		"lower":       {m: l, dense: upper.Transpose()},
		"symmetric":   {m: s, dense: dense},
		"tridiagonal": {m: tri, dense: dense},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := td.m.MulVec(x)
			require.Nil(t, err)

			var expected mat.VecDense
			expected.MulVec(Gonum(td.dense), mat.NewVecDense(4, x.Slice()))
			assert.InDeltaSlice(t, expected.RawVector().Data, res.Slice(), 1e-12)

			_, err = td.m.MulVec(mustArray(t, []float64{1, 2}))
			assert.ErrorIs(t, err, ErrDimensionMismatch)
		})
	}
}

func TestUpperIdentityMulVec(t *testing.T) {
	u, err := NewUpper(5, 5)
	require.Nil(t, err)
	for i := 0; i < 5; i++ {
		require.Nil(t, u.Set(i, i, 1))
	}

	x := mustArray(t, []float64{3, -1.5, 0, 1e-9, 42})
	res, err := u.MulVec(x)
	require.Nil(t, err)
	eq, err := res.Equal(x)
	require.Nil(t, err)
	assert.True(t, eq)
}

func TestRectangularTriangular(t *testing.T) {
	wide := mustDense(t, [][]float64{
		{1, 2, 3, 4},
		{0, 5, 6, 7},
	})
	u, err := ToUpper(wide)
	require.Nil(t, err)
	assert.Equal(t, wide, u.ToDense())

	tall := wide.Transpose()
	l, err := ToLower(tall)
	require.Nil(t, err)
	assert.Equal(t, tall, l.ToDense())
	assert.Equal(t, wide, l.Transpose().ToDense())
	assert.Equal(t, tall, u.Transpose().ToDense())
}
