package mat

import (
	"errors"

	"github.com/aouyang1/go-poisson/array"
)

var (
	ErrInvalidSize     = array.ErrInvalidSize
	ErrOutOfBounds     = array.ErrOutOfBounds
	ErrStreamUnderflow = array.ErrStreamUnderflow

	ErrDimensionMismatch = errors.New("matrix dimension mismatch")
	ErrShapeViolation    = errors.New("coordinate is a structural zero of this matrix shape")
	ErrColMismatch       = errors.New("column size mismatch")
	ErrUninitialized     = errors.New("uninitialized matrix")
)
