package task_test

import (
	"testing"

	"github.com/incline-ml/incline/task"
)

func TestKnownKind(t *testing.T) {
	if !task.KnownKind(task.Classification) {
		t.Fatal("classif should be a known kind")
	}
	if !task.KnownKind(task.Regression) {
		t.Fatal("regr should be a known kind")
	}
	if task.KnownKind(task.Kind("surv")) {
		t.Fatal("surv should not be a known kind")
	}
	if task.KnownKind(task.Kind("")) {
		t.Fatal("the empty kind should not be known")
	}
}

func TestStratifiable(t *testing.T) {
	c := task.Task{ID: "sonar", Kind: task.Classification, Size: 208, Target: "Class"}
	if !c.Stratifiable() {
		t.Fatal("classification tasks define strata")
	}
	r := task.Task{ID: "bh", Kind: task.Regression, Size: 506, Target: "medv"}
	if r.Stratifiable() {
		t.Fatal("regression tasks have no strata to sample from")
	}
}
