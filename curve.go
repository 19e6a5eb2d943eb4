// Package incline generates learning curve data for machine learning
// experiments. A curve crosses a set of learners with a set of training
// percentages, delegates the evaluation of every combination to a
// benchmarking backend in one batch, and reshapes what comes back into a
// table ordered for plotting.
package incline

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/incline-ml/incline/benchmark"
	"github.com/incline-ml/incline/learner"
	"github.com/incline-ml/incline/measure"
	"github.com/incline-ml/incline/resample"
	"github.com/incline-ml/incline/task"
)

// Curve contains all the information for generating the data of one learning
// curve experiment. Resampling may be left nil, in which case a single
// holdout split with the default training fraction is used. Stratify asks
// for subsamples drawn stratified by target label and requires a
// classification task.
type Curve struct {
	Learners    []learner.Learner
	Task        task.Task
	Resampling  resample.Strategy
	Percentages []float64
	Measures    []measure.Measure
	Stratify    bool
}

// Generate evaluates every learner at every training percentage through r
// and reshapes the response into a learning curve table. The whole
// definition is validated before r is invoked, and the returned result is
// detached from the definition and the response. Evaluation failures are
// returned exactly as the runner raised them.
func (c Curve) Generate(r benchmark.Runner) (*Result, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	strategy := c.Resampling
	if strategy == nil {
		strategy = resample.Default()
	}

	variants := make([]learner.Downsampled, 0, len(c.Learners)*len(c.Percentages))
	for _, l := range c.Learners {
		for j, p := range c.Percentages {
			v := learner.Downsample(l, p, c.Stratify)
			v.ID = learner.DeriveID(l.ID, j+1)
			variants = append(variants, v)
		}
	}

	run := uuid.New().String()
	table, err := r.Evaluate(benchmark.Request{
		RunID:      run,
		Task:       c.Task,
		Resampling: strategy.Spec(),
		Variants:   variants,
		Measures:   c.Measures,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		TaskID:   c.Task.ID,
		Measures: measure.Disambiguate(c.Measures),
		Rows:     make([]Row, 0, len(variants)),
	}
	for _, l := range c.Learners {
		for j, p := range c.Percentages {
			id := learner.DeriveID(l.ID, j+1)
			row, ok := table.Row(id)
			if !ok {
				return nil, &benchmark.EvaluationError{
					RunID:   run,
					Variant: id,
					Reason:  "variant missing from evaluation response",
				}
			}
			if len(row.Values) != len(c.Measures) {
				return nil, &benchmark.EvaluationError{
					RunID:   run,
					Variant: id,
					Reason:  fmt.Sprintf("got %d values for %d measures", len(row.Values), len(c.Measures)),
				}
			}
			values := make([]float64, len(row.Values))
			copy(values, row.Values)
			result.Rows = append(result.Rows, Row{Learner: l.ID, Percentage: p, Values: values})
		}
	}
	return result, nil
}

func (c Curve) validate() error {
	if len(c.Learners) == 0 {
		return invalidf("learners", "at least one learner is required")
	}
	seen := make(map[string]bool, len(c.Learners))
	for i, l := range c.Learners {
		if len(l.ID) == 0 {
			return invalidf("learners", "learner at position %d has no identifier", i)
		}
		if seen[l.ID] {
			return invalidf("learners", "learner identifier %s appears more than once", l.ID)
		}
		seen[l.ID] = true
	}

	if len(c.Task.ID) == 0 {
		return invalidf("task", "task has no identifier")
	}
	if !task.KnownKind(c.Task.Kind) {
		return invalidf("task", "unknown task kind %q", c.Task.Kind)
	}
	if c.Task.Size <= 0 {
		return invalidf("task", "task %s has no observations", c.Task.ID)
	}
	for _, l := range c.Learners {
		if !l.Compatible(c.Task.Kind) {
			return invalidf("learners", "learner %s cannot be fit on a %s task", l.ID, c.Task.Kind)
		}
	}

	if c.Resampling != nil {
		if err := c.Resampling.Validate(); err != nil {
			return &ValidationError{Field: "resampling", Reason: err.Error()}
		}
	}

	if len(c.Percentages) < 2 {
		return invalidf("percentages", "a curve needs at least 2 percentages, got %d", len(c.Percentages))
	}
	for _, p := range c.Percentages {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return invalidf("percentages", "percentage %v is not a number", p)
		}
		if p <= 0 || p > 1 {
			return invalidf("percentages", "percentage %v lies outside (0, 1]", p)
		}
	}

	if len(c.Measures) == 0 {
		return invalidf("measures", "at least one measure is required")
	}
	for _, m := range c.Measures {
		if len(m.ID) == 0 {
			return invalidf("measures", "measure with display name %q has no identifier", m.Name)
		}
		if !m.Supports(c.Task.Kind) {
			return invalidf("measures", "measure %s does not support %s tasks", m.ID, c.Task.Kind)
		}
	}

	if c.Stratify && !c.Task.Stratifiable() {
		return invalidf("stratify", "stratified subsampling needs a %s task, task %s is %s",
			task.Classification, c.Task.ID, c.Task.Kind)
	}
	return nil
}
