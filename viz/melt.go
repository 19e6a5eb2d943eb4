// Package viz reshapes learning curve results into the long form and the
// plot payloads downstream renderers consume. Nothing in this package draws:
// rendering belongs to an external sidecar.
package viz

import (
	"sort"

	"github.com/incline-ml/incline"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// Point is one observation of the molten (long form) learning curve: the
// performance of a learner on one measure at one training percentage.
type Point struct {
	Learner     string  `json:"learner"`
	Percentage  float64 `json:"percentage"`
	Measure     string  `json:"measure"`
	Performance float64 `json:"performance"`
}

// Melt pivots a wide learning curve table into long form, one point per
// (learner, percentage, measure). With prettyNames the points carry measure
// display names rather than column keys.
func Melt(result *incline.Result, prettyNames bool) []Point {
	points := make([]Point, 0, len(result.Rows)*len(result.Measures))
	for _, row := range result.Rows {
		for i, m := range result.Measures {
			name := m.ID
			if prettyNames {
				name = m.Name
			}
			points = append(points, Point{
				Learner:     row.Learner,
				Percentage:  row.Percentage,
				Measure:     name,
				Performance: row.Values[i],
			})
		}
	}
	return points
}

// Axis is a dimension of the molten curve a renderer can map to a visual
// channel.
type Axis string

const (
	MeasureAxis Axis = "measure"
	LearnerAxis Axis = "learner"
	// NoAxis marks a channel left unmapped.
	NoAxis Axis = "none"
)

// Axes decides the visual mapping of a molten curve. The chosen facet axis
// splits the plot into panels and the other of measure/learner becomes the
// color axis distinguishing lines within a panel. An axis with a single
// distinct value carries no information and collapses to NoAxis.
func Axes(points []Point, facet Axis) (Axis, Axis, error) {
	var color Axis
	switch facet {
	case MeasureAxis:
		color = LearnerAxis
	case LearnerAxis:
		color = MeasureAxis
	default:
		return NoAxis, NoAxis, errors.Errorf("facet must be %s or %s, got %q", MeasureAxis, LearnerAxis, facet)
	}

	if len(AxisValues(points, facet)) < 2 {
		facet = NoAxis
	}
	if len(AxisValues(points, color)) < 2 {
		color = NoAxis
	}
	return facet, color, nil
}

// AxisValues returns the sorted distinct values the axis takes over the
// points. NoAxis has no values.
func AxisValues(points []Point, axis Axis) []string {
	values := make([]string, 0, len(points))
	for _, p := range points {
		switch axis {
		case MeasureAxis:
			values = append(values, p.Measure)
		case LearnerAxis:
			values = append(values, p.Learner)
		}
	}
	sort.Strings(values)
	size := set.Uniq(sort.StringSlice(values))
	return values[:size]
}
