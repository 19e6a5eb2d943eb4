package viz

import (
	"fmt"
	"time"

	"github.com/incline-ml/incline"
)

// PlotType labels the payload format a renderer receives.
type PlotType string

const (
	LearningCurvePlot PlotType = "learning_curve"
	ParetoFrontPlot   PlotType = "pareto_front"
)

// PlotData is the universal JSON payload submitted to the rendering sidecar.
type PlotData struct {
	PlotType  PlotType   `json:"plot_type"`
	Title     string     `json:"title"`
	Task      string     `json:"task,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Series    []Series   `json:"series"`
	Config    PlotConfig `json:"config"`
}

// Series is a single named data series in a plot. Facet carries the panel
// the series belongs to when the plot is faceted.
type Series struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Facet string      `json:"facet,omitempty"`
	Data  []DataPoint `json:"data"`
}

// DataPoint is one plotted point.
type DataPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// PlotConfig carries axis labelling and grouping hints for the renderer.
type PlotConfig struct {
	XAxisLabel string `json:"x_axis_label"`
	YAxisLabel string `json:"y_axis_label"`
	Facet      string `json:"facet"`
	Color      string `json:"color"`
	ShowLegend bool   `json:"show_legend"`
	ShowGrid   bool   `json:"show_grid"`
}

// CurvePlot builds the line-series payload of a learning curve. The facet
// argument names the axis split across panels; the other of measure/learner
// distinguishes lines within a panel. Series appear in table order, one per
// (panel, line) combination.
func CurvePlot(result *incline.Result, facet Axis, prettyNames bool) (PlotData, error) {
	points := Melt(result, prettyNames)
	facet, color, err := Axes(points, facet)
	if err != nil {
		return PlotData{}, err
	}

	index := make(map[string]int)
	var series []Series
	for _, p := range points {
		f := axisValue(p, facet)
		name := axisValue(p, color)
		if len(name) == 0 {
			name = f
		}
		if len(name) == 0 {
			name = "performance"
		}

		key := f + "\x00" + name
		i, ok := index[key]
		if !ok {
			i = len(series)
			index[key] = i
			series = append(series, Series{Name: name, Type: "line", Facet: f})
		}
		series[i].Data = append(series[i].Data, DataPoint{X: p.Percentage, Y: p.Performance})
	}

	return PlotData{
		PlotType:  LearningCurvePlot,
		Title:     fmt.Sprintf("Learning curve for %s", result.TaskID),
		Task:      result.TaskID,
		Timestamp: time.Now(),
		Series:    series,
		Config: PlotConfig{
			XAxisLabel: "percentage",
			YAxisLabel: "performance",
			Facet:      string(facet),
			Color:      string(color),
			ShowLegend: color != NoAxis,
			ShowGrid:   true,
		},
	}, nil
}

func axisValue(p Point, axis Axis) string {
	switch axis {
	case MeasureAxis:
		return p.Measure
	case LearnerAxis:
		return p.Learner
	}
	return ""
}
