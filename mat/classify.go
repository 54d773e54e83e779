package mat

import (
	"fmt"
)

// IsUpper reports whether every diagonal entry of d is nonzero and everything below the diagonal
// is zero
func IsUpper(d *Dense) bool {
	if d == nil {
		return false
	}
	return nonzeroDiag(d) && zeroBelow(d)
}

// IsLower reports whether every diagonal entry of d is nonzero and everything above the diagonal
// is zero
func IsLower(d *Dense) bool {
	if d == nil {
		return false
	}
	return nonzeroDiag(d) && zeroAbove(d)
}

// IsSym reports whether d is square and equal to its transpose
func IsSym(d *Dense) bool {
	if d == nil || d.rows != d.cols {
		return false
	}
	for c := 0; c < d.cols; c++ {
		for r := 0; r < c; r++ {
			if d.data[d.idx(c, r)] != d.data[d.idx(r, c)] {
				return false
			}
		}
	}
	return true
}

// IsTri reports whether d is square and zero outside the three central diagonals
func IsTri(d *Dense) bool {
	if d == nil || d.rows != d.cols {
		return false
	}
	for c := 0; c < d.cols; c++ {
		for r := 0; r < d.rows; r++ {
			if (r < c-1 || r > c+1) && d.data[d.idx(c, r)] != 0 {
				return false
			}
		}
	}
	return true
}

func nonzeroDiag(d *Dense) bool {
	for i := 0; i < min(d.rows, d.cols); i++ {
		if d.data[d.idx(i, i)] == 0 {
			return false
		}
	}
	return true
}

func zeroBelow(d *Dense) bool {
	for c := 0; c < d.cols; c++ {
		for r := c + 1; r < d.rows; r++ {
			if d.data[d.idx(c, r)] != 0 {
				return false
			}
		}
	}
	return true
}

func zeroAbove(d *Dense) bool {
	for c := 1; c < d.cols; c++ {
		for r := 0; r < c && r < d.rows; r++ {
			if d.data[d.idx(c, r)] != 0 {
				return false
			}
		}
	}
	return true
}

// ToUpper copies the upper triangle of d. Any nonzero entry below the diagonal fails with
// ErrShapeViolation rather than being dropped.
func ToUpper(d *Dense) (*Upper, error) {
	if d == nil {
		return nil, ErrUninitialized
	}
	if !zeroBelow(d) {
		return nil, fmt.Errorf("converting to %s, nonzero entry below the diagonal, %w", KindUpper, ErrShapeViolation)
	}

	u, err := NewUpper(d.rows, d.cols)
	if err != nil {
		return nil, err
	}
	for c := 0; c < d.cols; c++ {
		n := min(c+1, d.rows)
		start := upperOffset(d.rows, c)
		copy(u.data[start:start+n], d.data[c*d.rows:c*d.rows+n])
	}
	return u, nil
}

// ToLower copies the lower triangle of d. Any nonzero entry above the diagonal fails with
// ErrShapeViolation rather than being dropped.
func ToLower(d *Dense) (*Lower, error) {
	if d == nil {
		return nil, ErrUninitialized
	}
	if !zeroAbove(d) {
		return nil, fmt.Errorf("converting to %s, nonzero entry above the diagonal, %w", KindLower, ErrShapeViolation)
	}

	l, err := NewLower(d.rows, d.cols)
	if err != nil {
		return nil, err
	}
	for c := 0; c < d.cols && c < d.rows; c++ {
		start := lowerOffset(d.rows, c)
		copy(l.data[start:start+d.rows-c], d.data[c*d.rows+c:(c+1)*d.rows])
	}
	return l, nil
}

// ToSym copies the upper triangle of a symmetric d
func ToSym(d *Dense) (*Sym, error) {
	if d == nil {
		return nil, ErrUninitialized
	}
	s, err := NewSym(d.rows, d.cols)
	if err != nil {
		return nil, err
	}
	if !IsSym(d) {
		return nil, fmt.Errorf("converting to %s, matrix is not symmetric, %w", KindSym, ErrShapeViolation)
	}

	for c := 0; c < d.cols; c++ {
		start := c * (c + 1) / 2
		copy(s.data[start:start+c+1], d.data[c*d.rows:c*d.rows+c+1])
	}
	return s, nil
}

// ToTri copies the three central diagonals of d
func ToTri(d *Dense) (*Tri, error) {
	if d == nil {
		return nil, ErrUninitialized
	}
	t, err := NewTri(d.rows, d.cols)
	if err != nil {
		return nil, err
	}
	if !IsTri(d) {
		return nil, fmt.Errorf("converting to %s, nonzero entry outside the band, %w", KindTri, ErrShapeViolation)
	}

	n := d.rows
	for i := 0; i < n; i++ {
		t.diag[i] = d.data[d.idx(i, i)]
		if i < n-1 {
			t.sub[i] = d.data[d.idx(i, i+1)]
			t.super[i] = d.data[d.idx(i+1, i)]
		}
	}
	return t, nil
}

// Classify returns the most compact kind d qualifies for, checked in the order tridiagonal, upper,
// lower, symmetric and finally dense
func Classify(d *Dense) Kind {
	switch {
	case IsTri(d):
		return KindTri
	case IsUpper(d):
		return KindUpper
	case IsLower(d):
		return KindLower
	case IsSym(d):
		return KindSym
	default:
		return KindDense
	}
}

// Convert returns d in the compact layout of kind k
func Convert(d *Dense, k Kind) (Matrix, error) {
	if d == nil {
		return nil, ErrUninitialized
	}

	var (
		m   Matrix
		err error
	)
	switch k {
	case KindDense:
		m = d.Copy()
	case KindUpper:
		var u *Upper
		if u, err = ToUpper(d); err == nil {
			m = u
		}
	case KindLower:
		var l *Lower
		if l, err = ToLower(d); err == nil {
			m = l
		}
	case KindSym:
		var s *Sym
		if s, err = ToSym(d); err == nil {
			m = s
		}
	case KindTri:
		var t *Tri
		if t, err = ToTri(d); err == nil {
			m = t
		}
	default:
		err = fmt.Errorf("unknown kind %d, %w", k, ErrShapeViolation)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
