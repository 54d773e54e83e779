package poisson

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aouyang1/go-poisson/mat"
	"github.com/aouyang1/go-poisson/pde"
	"github.com/goccy/go-json"
)

// Results holds one solve. Grid and Exact are stored row by row with row 0 at the bottom edge.
type Results struct {
	Problem    string        `json:"problem"`
	Partitions int           `json:"partitions"`
	Lower      float64       `json:"lower"`
	Upper      float64       `json:"upper"`
	Method     pde.Method    `json:"method"`
	Unknowns   int           `json:"unknowns"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Solution   []float64     `json:"solution"`
	Grid       [][]float64   `json:"grid"`
	Exact      [][]float64   `json:"exact"`
	Scores     *Scores       `json:"scores"`
}

func gridRows(g *mat.Dense) ([][]float64, error) {
	rows := make([][]float64, 0, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		row, err := g.Row(r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeRows(w io.Writer, rows [][]float64) error {
	d, err := mat.NewDenseFromArray(rows)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, d.String())
	return err
}

// WriteGrid writes the solved grid one row per line with space separated values
func (r *Results) WriteGrid(w io.Writer) error {
	return writeRows(w, r.Grid)
}

// WriteExact writes the exact grid in the same layout as WriteGrid
func (r *Results) WriteExact(w io.Writer) error {
	return writeRows(w, r.Exact)
}

// WriteJSON writes the indented JSON encoding of the results
func (r *Results) WriteJSON(w io.Writer) error {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal results, %w", err)
	}
	_, err = w.Write(bytes)
	return err
}

// ReadResults loads results previously written by WriteJSON
func ReadResults(path string) (*Results, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var res Results
	if err := json.Unmarshal(bytes, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal results from %s, %w", path, err)
	}
	return &res, nil
}
