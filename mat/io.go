package mat

import (
	"io"

	"github.com/aouyang1/go-poisson/array"
)

// ReadDense parses rows*cols whitespace delimited values laid out one matrix row after another,
// the same layout String writes
func ReadDense(r io.Reader, rows, cols int) (*Dense, error) {
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := d.Read(r); err != nil {
		return nil, err
	}
	return d, nil
}

// Read fills the pre-sized d from r in row major order. d is left untouched on error.
func (d *Dense) Read(r io.Reader) error {
	vals, err := array.ReadFloats(r, d.rows*d.cols)
	if err != nil {
		return err
	}
	for i, v := range vals {
		row, col := i/d.cols, i%d.cols
		d.data[d.idx(col, row)] = v
	}
	return nil
}
