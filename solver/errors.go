package solver

import (
	"errors"

	"github.com/aouyang1/go-poisson/mat"
)

var (
	ErrDimensionMismatch = mat.ErrDimensionMismatch
	ErrUninitialized     = mat.ErrUninitialized

	ErrSingularSystem  = errors.New("singular system")
	ErrUnsupportedKind = errors.New("unsupported matrix kind")
	ErrNegativeEpsilon = errors.New("negative epsilon")
)
