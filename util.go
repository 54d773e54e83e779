package poisson

import (
	"errors"
	"math"
	"os"
	"strconv"

	"github.com/aouyang1/go-poisson/pde"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var (
	ErrNoGrid       = errors.New("no grid values to plot")
	ErrGridMismatch = errors.New("solved and exact grids have different shapes")
)

var heatColors = []string{"#313695", "#4575b4", "#abd9e9", "#fee090", "#f46d43", "#a50026"}

func axisLabels(lower, upper float64, n int) []string {
	labels := make([]string, 0, n+1)
	h := (upper - lower) / float64(n)
	for k := 0; k <= n; k++ {
		labels = append(labels, strconv.FormatFloat(lower+float64(k)*h, 'f', 2, 64))
	}
	return labels
}

// HeatMapGrid generates an echart heat map of a grid stored row by row with row 0 at the bottom edge
// of [lower, upper] x [lower, upper].
func HeatMapGrid(title string, grid [][]float64, lower, upper float64) (*charts.HeatMap, error) {
	if len(grid) < 2 {
		return nil, ErrNoGrid
	}
	n := len(grid) - 1
	labels := axisLabels(lower, upper, n)

	lo, hi := math.Inf(1), math.Inf(-1)
	data := make([]opts.HeatMapData, 0, len(grid)*len(grid))
	for j, row := range grid {
		for i, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, v}})
		}
	}
	if lo == hi {
		hi = lo + 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Type: "category",
				Data: labels,
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "category",
				Data: labels,
			},
		),
		charts.WithVisualMapOpts(
			opts.VisualMap{
				Calculable: opts.Bool(true),
				Min:        float32(lo),
				Max:        float32(hi),
				InRange: &opts.VisualMapInRange{
					Color: heatColors,
				},
			},
		),
	)
	hm.SetXAxis(labels).AddSeries(title, data)
	return hm, nil
}

func errorGrid(approx, exact [][]float64) ([][]float64, error) {
	if len(approx) != len(exact) {
		return nil, ErrGridMismatch
	}
	res := make([][]float64, len(approx))
	for j := range approx {
		if len(approx[j]) != len(exact[j]) {
			return nil, ErrGridMismatch
		}
		res[j] = make([]float64, len(approx[j]))
		for i := range approx[j] {
			res[j][i] = math.Abs(approx[j][i] - exact[j][i])
		}
	}
	return res, nil
}

// LineStudy generates an echart multi-line chart with one series per method. The value function picks
// the plotted quantity of each study point.
func LineStudy(title string, points []StudyPoint, value func(StudyPoint) float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	var sizes []int
	series := make(map[pde.Method][]opts.LineData)
	var order []pde.Method
	for _, pt := range points {
		if _, exists := series[pt.Method]; !exists {
			order = append(order, pt.Method)
		}
		if len(order) == 1 {
			sizes = append(sizes, pt.Partitions)
		}
		series[pt.Method] = append(series[pt.Method], opts.LineData{Value: value(pt)})
	}

	line = line.SetXAxis(sizes)
	for _, m := range order {
		line = line.AddSeries(m.String(), series[m])
	}
	return line
}

// Plot uses the Apache Echarts library to generate an html file showing the solved grid, the exact
// grid and the absolute error between them.
func (r *Results) Plot(path string) error {
	solved, err := HeatMapGrid("Solution", r.Grid, r.Lower, r.Upper)
	if err != nil {
		return err
	}
	exact, err := HeatMapGrid("Exact", r.Exact, r.Lower, r.Upper)
	if err != nil {
		return err
	}
	errs, err := errorGrid(r.Grid, r.Exact)
	if err != nil {
		return err
	}
	diff, err := HeatMapGrid("Absolute Error", errs, r.Lower, r.Upper)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.AddCharts(solved, exact, diff)
	return renderPage(path, page)
}

// PlotStudy generates an html file with the grid error and solve time of every study point
func PlotStudy(path string, points []StudyPoint) error {
	page := components.NewPage()
	page.AddCharts(
		LineStudy("Grid L2 Error", points, func(pt StudyPoint) float64 {
			return pt.GridL2
		}),
		LineStudy("Solve Time (ms)", points, func(pt StudyPoint) float64 {
			return float64(pt.Elapsed.Microseconds()) / 1000
		}),
	)
	return renderPage(path, page)
}

func renderPage(path string, page *components.Page) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return page.Render(file)
}
