// Package learner describes learning algorithm configurations submitted for evaluation.
package learner

import (
	"github.com/incline-ml/incline/task"
)

// Params is a set of hyper-parameters attached to a learner configuration.
type Params map[string]float64

// Get returns the value of the parameter by name if it exists and dflt otherwise.
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

// Learner is a named learning algorithm configuration. Like tasks, learners
// are descriptors: the benchmarking backend resolves the identifier to a
// concrete implementation and trains it. Kind, when set, restricts the
// learner to tasks of the same kind.
type Learner struct {
	ID     string    `json:"id" toml:"id"`
	Kind   task.Kind `json:"kind,omitempty" toml:"kind"`
	Params Params    `json:"params,omitempty" toml:"params"`
}

// New creates a learner configuration for the given algorithm identifier.
func New(id string, kind task.Kind, params Params) Learner {
	return Learner{ID: id, Kind: kind, Params: params}
}

// Compatible reports whether the learner can be fit on a task of kind k.
// Learners without a declared kind are assumed universal.
func (l Learner) Compatible(k task.Kind) bool {
	return l.Kind == "" || l.Kind == k
}
