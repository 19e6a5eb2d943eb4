package measure

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregation reduces the per-iteration performances of a resampled
// evaluation to the single value reported for a variant. The suffix joins a
// measure identifier to form its table column key, e.g. "acc.test.mean".
type Aggregation struct {
	Suffix  string
	Combine func(values []float64) float64
}

var (
	// TestMean averages test performance over resampling iterations.
	TestMean = Aggregation{"test.mean", func(v []float64) float64 {
		if len(v) == 0 {
			return math.NaN()
		}
		return stat.Mean(v, nil)
	}}
	// TestMedian takes the median test performance.
	TestMedian = Aggregation{"test.median", func(v []float64) float64 {
		if len(v) == 0 {
			return math.NaN()
		}
		s := append([]float64{}, v...)
		sort.Float64s(s)
		return stat.Quantile(0.5, stat.Empirical, s, nil)
	}}
	// TestSD takes the standard deviation of test performance.
	TestSD = Aggregation{"test.sd", func(v []float64) float64 {
		if len(v) < 2 {
			return math.NaN()
		}
		return stat.StdDev(v, nil)
	}}
	// TestMin takes the worst-case (smallest) test performance.
	TestMin = Aggregation{"test.min", func(v []float64) float64 {
		if len(v) == 0 {
			return math.NaN()
		}
		return floats.Min(v)
	}}
	// TestMax takes the best-case (largest) test performance.
	TestMax = Aggregation{"test.max", func(v []float64) float64 {
		if len(v) == 0 {
			return math.NaN()
		}
		return floats.Max(v)
	}}
)

// LookupAggregation resolves an aggregation by its column suffix.
func LookupAggregation(suffix string) (Aggregation, bool) {
	for _, a := range []Aggregation{TestMean, TestMedian, TestSD, TestMin, TestMax} {
		if a.Suffix == suffix {
			return a, true
		}
	}
	return Aggregation{}, false
}

// MarshalJSON encodes an aggregation as its column suffix.
func (a Aggregation) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Suffix)
}

// UnmarshalJSON decodes a column suffix, resolving known aggregations to
// their combine functions.
func (a *Aggregation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if known, ok := LookupAggregation(s); ok {
		*a = known
		return nil
	}
	*a = Aggregation{Suffix: s}
	return nil
}
