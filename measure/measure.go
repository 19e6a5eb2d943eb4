// Package measure describes performance metrics and how their values are aggregated and displayed.
package measure

import (
	"github.com/incline-ml/incline/task"
)

// Measure is a scalar performance metric the benchmarking backend computes
// from predictions and ground truth. Measures are descriptors; no metric is
// computed in this package beyond aggregating already-computed values.
type Measure struct {
	// ID is the metric identifier, e.g. "acc". IDs may collide between
	// measures that differ only in aggregation; Disambiguate resolves
	// collisions before identifiers become column keys.
	ID string `json:"id"`
	// Name is the human-readable display name, e.g. "Accuracy".
	Name string `json:"name"`
	// Minimize indicates smaller values are better.
	Minimize bool `json:"minimize,omitempty"`
	// Kinds restricts the measure to certain task kinds; empty means the
	// measure applies to every kind.
	Kinds []task.Kind `json:"kinds,omitempty"`
	// Aggr reduces per-iteration values to the reported one; the zero
	// value means test-mean.
	Aggr Aggregation `json:"aggr"`
}

var (
	// Accuracy is the proportion of correctly classified observations.
	Accuracy = Measure{ID: "acc", Name: "Accuracy", Kinds: classif}
	// MMCE is the mean misclassification error.
	MMCE = Measure{ID: "mmce", Name: "Mean misclassification error", Minimize: true, Kinds: classif}
	// F1 is the harmonic mean of precision and recall.
	F1 = Measure{ID: "f1", Name: "F1 measure", Kinds: classif}
	// AUC is the area under the ROC curve.
	AUC = Measure{ID: "auc", Name: "Area under the curve", Kinds: classif}
	// RMSE is the root mean squared error.
	RMSE = Measure{ID: "rmse", Name: "Root mean squared error", Minimize: true, Kinds: regr}
	// MAE is the mean absolute error.
	MAE = Measure{ID: "mae", Name: "Mean absolute error", Minimize: true, Kinds: regr}
	// MSE is the mean squared error.
	MSE = Measure{ID: "mse", Name: "Mean squared error", Minimize: true, Kinds: regr}
	// TrainTime is the time spent fitting a model, in seconds.
	TrainTime = Measure{ID: "timetrain", Name: "Time of fitting the model", Minimize: true}
)

var (
	classif = []task.Kind{task.Classification}
	regr    = []task.Kind{task.Regression}
)

// Builtin returns a fresh catalog of the built-in measures keyed by
// identifier. Callers own the returned map; there is no shared registry.
func Builtin() map[string]Measure {
	catalog := make(map[string]Measure)
	for _, m := range []Measure{Accuracy, MMCE, F1, AUC, RMSE, MAE, MSE, TrainTime} {
		catalog[m.ID] = m
	}
	return catalog
}

// Supports reports whether the measure is computable for tasks of kind k.
func (m Measure) Supports(k task.Kind) bool {
	if len(m.Kinds) == 0 {
		return true
	}
	for _, mk := range m.Kinds {
		if mk == k {
			return true
		}
	}
	return false
}

// Key is the table column key for the aggregated measure, e.g. "acc.test.mean".
func (m Measure) Key() string {
	suffix := m.Aggr.Suffix
	if suffix == "" {
		suffix = TestMean.Suffix
	}
	return m.ID + "." + suffix
}

// Combine reduces per-iteration values with the measure's aggregation.
func (m Measure) Combine(values []float64) float64 {
	if m.Aggr.Combine != nil {
		return m.Aggr.Combine(values)
	}
	if a, ok := LookupAggregation(m.Aggr.Suffix); ok {
		return a.Combine(values)
	}
	return TestMean.Combine(values)
}
