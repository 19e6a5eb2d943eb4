package incline_test

import (
	"math"
	"testing"

	"github.com/incline-ml/incline"
	"github.com/incline-ml/incline/benchmark"
	"github.com/incline-ml/incline/learner"
	"github.com/incline-ml/incline/measure"
	"github.com/incline-ml/incline/resample"
	"github.com/incline-ml/incline/task"
	"github.com/pkg/errors"
	"gotest.tools/assert"
)

// fakeRunner evaluates batches deterministically: the value of a variant on
// a measure depends only on the variant identifier and the measure position.
type fakeRunner struct {
	requests []benchmark.Request
	reverse  bool
	drop     string
	err      error
	last     *benchmark.Table
}

func score(id string, measure int) float64 {
	var s float64
	for _, b := range []byte(id) {
		s += float64(b)
	}
	return s + float64(measure)/10
}

func (f *fakeRunner) Evaluate(r benchmark.Request) (*benchmark.Table, error) {
	f.requests = append(f.requests, r)
	if f.err != nil {
		return nil, f.err
	}

	table := &benchmark.Table{Columns: r.Columns()}
	for _, v := range r.Variants {
		if v.ID == f.drop {
			continue
		}
		values := make([]float64, len(r.Measures))
		for j := range r.Measures {
			values[j] = score(v.ID, j)
		}
		table.Rows = append(table.Rows, benchmark.TableRow{Variant: v.ID, Values: values})
	}
	if f.reverse {
		for i, j := 0, len(table.Rows)-1; i < j; i, j = i+1, j-1 {
			table.Rows[i], table.Rows[j] = table.Rows[j], table.Rows[i]
		}
	}
	f.last = table
	return table, nil
}

func sonarCurve() incline.Curve {
	return incline.Curve{
		Learners: []learner.Learner{
			learner.New("classif.rpart", task.Classification, nil),
			learner.New("classif.randomForest", task.Classification, learner.Params{"ntree": 100}),
		},
		Task:        task.Task{ID: "sonar", Kind: task.Classification, Size: 208, Target: "Class"},
		Percentages: []float64{0.1, 0.5, 1},
		Measures:    []measure.Measure{measure.Accuracy, measure.TrainTime},
	}
}

func TestGenerate(t *testing.T) {
	f := &fakeRunner{}
	result, err := sonarCurve().Generate(f)
	if err != nil {
		t.Fatal(err)
	}

	if len(f.requests) != 1 {
		t.Fatalf("the runner was invoked %d times, want one batched call", len(f.requests))
	}
	req := f.requests[0]
	if len(req.RunID) == 0 {
		t.Fatal("expected the batch to carry a run identifier")
	}
	if req.Resampling.Kind != "Holdout" {
		t.Fatalf("got resampling %s, want the holdout default", req.Resampling.Kind)
	}

	wantVariants := []string{
		"classif.rpart.1", "classif.rpart.2", "classif.rpart.3",
		"classif.randomForest.1", "classif.randomForest.2", "classif.randomForest.3",
	}
	if len(req.Variants) != len(wantVariants) {
		t.Fatalf("got %d variants, want %d", len(req.Variants), len(wantVariants))
	}
	for i, v := range req.Variants {
		if v.ID != wantVariants[i] {
			t.Fatalf("variant %d is %s, want %s", i, v.ID, wantVariants[i])
		}
	}

	if result.TaskID != "sonar" {
		t.Fatalf("got task %s, want sonar", result.TaskID)
	}
	if len(result.Rows) != 6 {
		t.Fatalf("got %d rows, want 2 learners x 3 percentages = 6", len(result.Rows))
	}

	wantRows := []struct {
		learner    string
		percentage float64
	}{
		{"classif.rpart", 0.1},
		{"classif.rpart", 0.5},
		{"classif.rpart", 1},
		{"classif.randomForest", 0.1},
		{"classif.randomForest", 0.5},
		{"classif.randomForest", 1},
	}
	for i, row := range result.Rows {
		if row.Learner != wantRows[i].learner || row.Percentage != wantRows[i].percentage {
			t.Fatalf("row %d is (%s, %v), want (%s, %v)",
				i, row.Learner, row.Percentage, wantRows[i].learner, wantRows[i].percentage)
		}
		if len(row.Values) != 2 {
			t.Fatalf("row %d carries %d values, want 2", i, len(row.Values))
		}
		if row.Values[0] != score(wantVariants[i], 0) {
			t.Fatalf("row %d carries the values of another variant", i)
		}
	}

	if len(result.Measures) != 2 || result.Measures[0].ID != "acc.test.mean" || result.Measures[1].ID != "timetrain.test.mean" {
		t.Fatalf("got columns %v", result.Measures)
	}
}

func TestGenerateOrderIndependentOfResponseOrder(t *testing.T) {
	ordered, err := sonarCurve().Generate(&fakeRunner{})
	if err != nil {
		t.Fatal(err)
	}
	reversed, err := sonarCurve().Generate(&fakeRunner{reverse: true})
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, ordered, reversed)
}

func TestGenerateIsRepeatable(t *testing.T) {
	first, err := sonarCurve().Generate(&fakeRunner{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := sonarCurve().Generate(&fakeRunner{})
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, first, second)
}

func TestGenerateDetachesFromResponse(t *testing.T) {
	f := &fakeRunner{}
	result, err := sonarCurve().Generate(f)
	if err != nil {
		t.Fatal(err)
	}

	want := result.Rows[0].Values[0]
	f.last.Rows[0].Values[0] = -1
	if result.Rows[0].Values[0] != want {
		t.Fatal("mutating the response table changed the result")
	}
}

func TestGenerateKeepsResamplingStrategy(t *testing.T) {
	c := sonarCurve()
	c.Resampling = resample.CV{Folds: 5}

	f := &fakeRunner{}
	if _, err := c.Generate(f); err != nil {
		t.Fatal(err)
	}
	spec := f.requests[0].Resampling
	if spec.Kind != "CV" || spec.Folds != 5 {
		t.Fatalf("got resampling %+v, want 5-fold CV", spec)
	}
}

func TestGenerateDisambiguatesColumns(t *testing.T) {
	sd := measure.Accuracy
	sd.Aggr = measure.TestSD

	c := sonarCurve()
	c.Measures = []measure.Measure{measure.Accuracy, sd}

	result, err := c.Generate(&fakeRunner{})
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, result.Measures, []measure.Column{
		{ID: "acc.test.mean", Name: "acc.test.mean"},
		{ID: "acc.test.sd", Name: "acc.test.sd"},
	})
}

func TestGenerateValidation(t *testing.T) {
	cases := []struct {
		name  string
		field string
		bad   func(c *incline.Curve)
	}{
		{"no learners", "learners", func(c *incline.Curve) { c.Learners = nil }},
		{"unnamed learner", "learners", func(c *incline.Curve) { c.Learners[1].ID = "" }},
		{"duplicate learner", "learners", func(c *incline.Curve) { c.Learners[1].ID = c.Learners[0].ID }},
		{"incompatible learner", "learners", func(c *incline.Curve) { c.Learners[1].Kind = task.Regression }},
		{"unnamed task", "task", func(c *incline.Curve) { c.Task.ID = "" }},
		{"unknown task kind", "task", func(c *incline.Curve) { c.Task.Kind = "cluster" }},
		{"empty task", "task", func(c *incline.Curve) { c.Task.Size = 0 }},
		{"bad resampling", "resampling", func(c *incline.Curve) { c.Resampling = resample.Holdout{Split: 1.5} }},
		{"single percentage", "percentages", func(c *incline.Curve) { c.Percentages = []float64{0.5} }},
		{"zero percentage", "percentages", func(c *incline.Curve) { c.Percentages = []float64{0, 0.5} }},
		{"percentage above one", "percentages", func(c *incline.Curve) { c.Percentages = []float64{0.5, 1.5} }},
		{"missing percentage", "percentages", func(c *incline.Curve) { c.Percentages = []float64{0.5, math.NaN()} }},
		{"no measures", "measures", func(c *incline.Curve) { c.Measures = nil }},
		{"unsupported measure", "measures", func(c *incline.Curve) { c.Measures = []measure.Measure{measure.RMSE} }},
		{"stratified regression", "stratify", func(c *incline.Curve) {
			c.Learners = []learner.Learner{learner.New("regr.lm", task.Regression, nil)}
			c.Task = task.Task{ID: "bh", Kind: task.Regression, Size: 506, Target: "medv"}
			c.Measures = []measure.Measure{measure.RMSE}
			c.Stratify = true
		}},
	}

	for _, tc := range cases {
		c := sonarCurve()
		tc.bad(&c)

		f := &fakeRunner{}
		_, err := c.Generate(f)
		if err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
		if !incline.IsValidation(err) {
			t.Fatalf("%s: got %v, want a validation error", tc.name, err)
		}
		ve := errors.Cause(err).(*incline.ValidationError)
		if ve.Field != tc.field {
			t.Fatalf("%s: rejected %s, want %s", tc.name, ve.Field, tc.field)
		}
		if len(f.requests) != 0 {
			t.Fatalf("%s: the runner was invoked on an invalid definition", tc.name)
		}
	}
}

func TestGenerateEvaluationFailurePassesThrough(t *testing.T) {
	evalErr := &benchmark.EvaluationError{RunID: "run-1", Reason: "backend down"}
	_, err := sonarCurve().Generate(&fakeRunner{err: evalErr})
	if err != evalErr {
		t.Fatalf("got %v, want the evaluation error unchanged", err)
	}
}

func TestGenerateMissingVariant(t *testing.T) {
	_, err := sonarCurve().Generate(&fakeRunner{drop: "classif.randomForest.2"})
	if err == nil {
		t.Fatal("expected an error for a variant missing from the response")
	}
	if !benchmark.IsEvaluation(err) {
		t.Fatalf("got %v, want an evaluation error", err)
	}
	ee := errors.Cause(err).(*benchmark.EvaluationError)
	if ee.Variant != "classif.randomForest.2" {
		t.Fatalf("error names variant %s, want classif.randomForest.2", ee.Variant)
	}
}
