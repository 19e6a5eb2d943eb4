// Package task describes modelling problems bound to datasets held by a benchmarking backend.
package task

// Kind is the type of modelling problem a task poses.
type Kind string

const (
	// Classification tasks predict a discrete label.
	Classification Kind = "classif"
	// Regression tasks predict a continuous value.
	Regression Kind = "regr"
)

// KnownKind reports whether k is a task kind this framework recognises.
func KnownKind(k Kind) bool {
	switch k {
	case Classification, Regression:
		return true
	}
	return false
}

// Task identifies a modelling problem: a dataset known to the benchmarking
// backend, the target to predict, and the kind of prediction being made.
// Tasks are descriptors only; the data itself never passes through here.
type Task struct {
	ID     string `json:"id" toml:"id"`
	Kind   Kind   `json:"kind" toml:"kind"`
	Size   int    `json:"size" toml:"size"`
	Target string `json:"target" toml:"target"`
}

// Stratifiable reports whether observations of this task can be sampled
// stratified by target label. Only classification targets define strata.
func (t Task) Stratifiable() bool {
	return t.Kind == Classification
}
