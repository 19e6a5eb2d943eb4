package viz

import (
	"time"

	"github.com/pkg/errors"
)

// Front returns the indices of the non-dominated rows of a multi-objective
// result space. Row a dominates row b when a is at least as good as b on
// every objective and strictly better on one; minimize flags the objectives
// where smaller is better. Rows that tie everywhere do not dominate each
// other, so duplicates of a front row stay on the front.
func Front(points [][]float64, minimize []bool) ([]int, error) {
	for i, p := range points {
		if len(p) != len(minimize) {
			return nil, errors.Errorf("row %d has %d objectives, want %d", i, len(p), len(minimize))
		}
	}

	var front []int
	for i := range points {
		dominated := false
		for j := range points {
			if i == j {
				continue
			}
			if dominates(points[j], points[i], minimize) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front, nil
}

func dominates(a, b []float64, minimize []bool) bool {
	better := false
	for k := range a {
		av, bv := a[k], b[k]
		if minimize[k] {
			av, bv = -av, -bv
		}
		if av < bv {
			return false
		}
		if av > bv {
			better = true
		}
	}
	return better
}

// FrontPlot builds a scatter payload of a two-objective result space with
// front membership marked: one series for the non-dominated rows, one for
// the rest. Labels name the rows and may be nil.
func FrontPlot(title string, labels []string, points [][]float64, minimize []bool) (PlotData, error) {
	if len(minimize) != 2 {
		return PlotData{}, errors.Errorf("a front scatter plots exactly 2 objectives, got %d", len(minimize))
	}
	if labels != nil && len(labels) != len(points) {
		return PlotData{}, errors.Errorf("got %d labels for %d rows", len(labels), len(points))
	}

	front, err := Front(points, minimize)
	if err != nil {
		return PlotData{}, err
	}
	onFront := make(map[int]bool, len(front))
	for _, i := range front {
		onFront[i] = true
	}

	series := []Series{
		{Name: "front", Type: "scatter"},
		{Name: "dominated", Type: "scatter"},
	}
	for i, p := range points {
		point := DataPoint{X: p[0], Y: p[1]}
		if labels != nil {
			point.Label = labels[i]
		}
		if onFront[i] {
			series[0].Data = append(series[0].Data, point)
		} else {
			series[1].Data = append(series[1].Data, point)
		}
	}

	return PlotData{
		PlotType:  ParetoFrontPlot,
		Title:     title,
		Timestamp: time.Now(),
		Series:    series,
		Config: PlotConfig{
			XAxisLabel: "objective 1",
			YAxisLabel: "objective 2",
			Facet:      string(NoAxis),
			Color:      string(NoAxis),
			ShowLegend: true,
			ShowGrid:   true,
		},
	}, nil
}
