// Package array provides the fixed size numeric vector used as the right hand side and solution
// of every linear system in this module.
package array

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aouyang1/go-poisson/floatsunrolled"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidSize     = errors.New("size must be at least 1")
	ErrOutOfBounds     = errors.New("index is out of bounds")
	ErrSizeMismatch    = errors.New("array size mismatch")
	ErrStreamUnderflow = errors.New("not enough data in stream to fill container")
	ErrUninitialized   = errors.New("uninitialized array")
)

// Array is a fixed length sequence of float64 values. The length is set at construction and never
// changes; copies are deep and Move hands the backing storage to a new Array.
type Array struct {
	arr []float64
}

// New returns a zeroed array of the given size
func New(size int) (*Array, error) {
	if size < 1 {
		return nil, fmt.Errorf("got size %d, %w", size, ErrInvalidSize)
	}
	return &Array{arr: make([]float64, size)}, nil
}

// NewFromSlice copies x into a new array
func NewFromSlice(x []float64) (*Array, error) {
	a, err := New(len(x))
	if err != nil {
		return nil, err
	}
	copy(a.arr, x)
	return a, nil
}

func (a *Array) Size() int {
	if a == nil {
		return 0
	}
	return len(a.arr)
}

func (a *Array) checkIndex(i int) error {
	if i < 0 || i >= a.Size() {
		return fmt.Errorf("index %d with size %d, %w", i, a.Size(), ErrOutOfBounds)
	}
	return nil
}

// Get retrieves the value at index i
func (a *Array) Get(i int) (float64, error) {
	if err := a.checkIndex(i); err != nil {
		return 0.0, err
	}
	return a.arr[i], nil
}

// Set stores v at index i
func (a *Array) Set(i int, v float64) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	a.arr[i] = v
	return nil
}

// Slice returns a copy of the values
func (a *Array) Slice() []float64 {
	res := make([]float64, a.Size())
	if a != nil {
		copy(res, a.arr)
	}
	return res
}

// Copy returns a deep copy of the array
func (a *Array) Copy() *Array {
	return &Array{arr: a.Slice()}
}

// Move transfers the backing storage to the returned array. The receiver is left empty and every
// indexed access on it fails with ErrOutOfBounds.
func (a *Array) Move() *Array {
	res := &Array{arr: a.arr}
	a.arr = nil
	return res
}

func sameSize(a, b *Array) error {
	if a == nil || b == nil {
		return ErrUninitialized
	}
	if a.Size() != b.Size() {
		return fmt.Errorf("sizes %d and %d, %w", a.Size(), b.Size(), ErrSizeMismatch)
	}
	return nil
}

// Add returns a + b
func (a *Array) Add(b *Array) (*Array, error) {
	if err := sameSize(a, b); err != nil {
		return nil, err
	}
	return &Array{arr: floatsunrolled.AddTo(nil, a.arr, b.arr)}, nil
}

// Sub returns a - b
func (a *Array) Sub(b *Array) (*Array, error) {
	if err := sameSize(a, b); err != nil {
		return nil, err
	}
	return &Array{arr: floatsunrolled.SubTo(nil, a.arr, b.arr)}, nil
}

// Neg returns -a
func (a *Array) Neg() *Array {
	return a.Scale(-1)
}

// Scale returns c * a
func (a *Array) Scale(c float64) *Array {
	return &Array{arr: floatsunrolled.ScaleTo(nil, c, a.Slice())}
}

// Dot returns the sum of the elementwise products of a and b
func (a *Array) Dot(b *Array) (float64, error) {
	if err := sameSize(a, b); err != nil {
		return 0.0, err
	}
	return floatsunrolled.Dot(a.arr, b.arr), nil
}

// Equal reports whether every element of a and b is exactly equal
func (a *Array) Equal(b *Array) (bool, error) {
	if err := sameSize(a, b); err != nil {
		return false, err
	}
	return floats.Equal(a.arr, b.arr), nil
}

// MaxIndex returns the index of the largest magnitude element in a[start:]. Ties keep the first
// occurrence. If every candidate is zero start is returned.
func MaxIndex(a *Array, start int) (int, error) {
	if a == nil {
		return 0, ErrUninitialized
	}
	if err := a.checkIndex(start); err != nil {
		return 0, err
	}

	idx := start
	maxVal := 0.0
	for i := start; i < len(a.arr); i++ {
		if v := math.Abs(a.arr[i]); v > maxVal {
			maxVal = v
			idx = i
		}
	}
	return idx, nil
}

// String renders one value per line
func (a *Array) String() string {
	var sb strings.Builder
	for _, v := range a.arr {
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Read fills the array from whitespace delimited tokens in r
func (a *Array) Read(r io.Reader) error {
	vals, err := ReadFloats(r, a.Size())
	if err != nil {
		return err
	}
	copy(a.arr, vals)
	return nil
}

// ReadFloats parses exactly n whitespace delimited floats from r. Tokens after the n-th are left
// unread.
func ReadFloats(r io.Reader, n int) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	vals := make([]float64, 0, n)
	for len(vals) < n {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("unable to read token %d, %w", len(vals), err)
			}
			return nil, fmt.Errorf("read %d of %d values, %w", len(vals), n, ErrStreamUnderflow)
		}
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse token %d, %w", len(vals), err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
