package poisson

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aouyang1/go-poisson/pde"
	"github.com/goccy/go-json"
)

var ErrEmptyStudy = errors.New("study needs at least one size and one method")

// StudyPoint is one solve of a convergence study
type StudyPoint struct {
	Partitions int           `json:"partitions"`
	Method     pde.Method    `json:"method"`
	Unknowns   int           `json:"unknowns"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	GridL2     float64       `json:"grid_l2"`
	Residual   float64       `json:"residual"`
}

// Study solves prob for every size with every method and records the error and solve time of each
// run. Points are ordered by method and then by size.
func (p *Poisson) Study(prob Problem, sizes []int, methods []pde.Method) ([]StudyPoint, error) {
	if len(sizes) == 0 || len(methods) == 0 {
		return nil, ErrEmptyStudy
	}

	points := make([]StudyPoint, 0, len(sizes)*len(methods))
	for _, method := range methods {
		for _, n := range sizes {
			res, err := p.solve(prob, n, method)
			if err != nil {
				return nil, fmt.Errorf("study failed at %d partitions, %w", n, err)
			}
			points = append(points, StudyPoint{
				Partitions: n,
				Method:     method,
				Unknowns:   res.Unknowns,
				Elapsed:    res.Elapsed,
				GridL2:     res.Scores.GridL2,
				Residual:   res.Scores.Residual,
			})
		}
	}
	return points, nil
}

// WriteStudyJSON writes the indented JSON encoding of the study points
func WriteStudyJSON(w io.Writer, points []StudyPoint) error {
	bytes, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal study, %w", err)
	}
	_, err = w.Write(bytes)
	return err
}
