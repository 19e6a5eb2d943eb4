// Package benchmark is the client side of the benchmarking backend that
// evaluations are delegated to. The backend trains and resamples; this
// package only describes batches, ships them, and caches what comes back.
package benchmark

import (
	"fmt"

	"github.com/incline-ml/incline/learner"
	"github.com/incline-ml/incline/measure"
	"github.com/incline-ml/incline/resample"
	"github.com/incline-ml/incline/task"
	"github.com/pkg/errors"
)

// Runner evaluates a batch of learner variants on a task and reports one
// aggregate value per measure for each variant. Implementations block until
// the whole batch has been evaluated.
type Runner interface {
	Evaluate(r Request) (*Table, error)
}

// Request is one batched evaluation. Every variant in the batch shares the
// task, the resampling strategy and the measures, so the values that come
// back are comparable across variants.
type Request struct {
	RunID      string                `json:"run_id"`
	Task       task.Task             `json:"task"`
	Resampling resample.Spec         `json:"resampling"`
	Variants   []learner.Downsampled `json:"variants"`
	Measures   []measure.Measure     `json:"measures"`
}

// Columns returns the measure column keys in request order.
func (r Request) Columns() []string {
	keys := make([]string, len(r.Measures))
	for i, m := range r.Measures {
		keys[i] = m.Key()
	}
	return keys
}

// Table is the aggregate result of one batched evaluation. Rows appear in
// whatever order the backend produced them and carry one value per column.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// TableRow holds the aggregated values for a single variant, parallel to the
// table columns.
type TableRow struct {
	Variant string    `json:"variant"`
	Values  []float64 `json:"values"`
}

// Row returns the row recorded for the named variant.
func (t *Table) Row(variant string) (TableRow, bool) {
	for _, row := range t.Rows {
		if row.Variant == variant {
			return row, true
		}
	}
	return TableRow{}, false
}

// EvaluationError is a failure raised while a batch was being evaluated.
// Variant is empty when the whole batch failed rather than a single variant.
type EvaluationError struct {
	RunID   string
	Variant string
	Reason  string
	Err     error
}

func (e *EvaluationError) Error() string {
	s := fmt.Sprintf("evaluation %s failed", e.RunID)
	if len(e.Variant) > 0 {
		s = fmt.Sprintf("evaluation %s failed for variant %s", e.RunID, e.Variant)
	}
	if len(e.Reason) > 0 {
		s += ": " + e.Reason
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// IsEvaluation reports whether err records a failed evaluation.
func IsEvaluation(err error) bool {
	_, ok := errors.Cause(err).(*EvaluationError)
	return ok
}
