// Package resample describes how train/test splits are produced for an evaluation.
package resample

import (
	"github.com/pkg/errors"
)

// Defaults applied when a description leaves a field at its zero value.
const (
	DefaultSplit      = 2.0 / 3.0
	DefaultIterations = 30
	DefaultFolds      = 10
)

// Strategy is either a description of a resampling scheme or a concrete,
// already-materialised partition. The benchmarking backend resolves
// descriptions to partitions before any model is trained.
type Strategy interface {
	// Kind names the resampling scheme.
	Kind() string
	// Iters is the number of train/test iterations the scheme produces.
	Iters() int
	// Validate rejects descriptions that cannot be resolved to a partition.
	Validate() error
	// Spec flattens the strategy for transport to the backend.
	Spec() Spec
}

// Spec is the wire representation of a resampling strategy.
type Spec struct {
	Kind  string  `json:"kind"`
	Iters int     `json:"iters,omitempty"`
	Split float64 `json:"split,omitempty"`
	Folds int     `json:"folds,omitempty"`
	Train [][]int `json:"train,omitempty"`
	Test  [][]int `json:"test,omitempty"`
}

// Holdout splits observations once into a training fraction and a test rest.
type Holdout struct {
	// Split is the training fraction; zero means the 2/3 default.
	Split float64
}

func (h Holdout) Kind() string {
	return "Holdout"
}

func (h Holdout) Iters() int {
	return 1
}

func (h Holdout) split() float64 {
	if h.Split == 0 {
		return DefaultSplit
	}
	return h.Split
}

func (h Holdout) Validate() error {
	if s := h.split(); s <= 0 || s >= 1 {
		return errors.Errorf("holdout split must lie strictly between 0 and 1, got %v", s)
	}
	return nil
}

func (h Holdout) Spec() Spec {
	return Spec{Kind: h.Kind(), Iters: 1, Split: h.split()}
}

// Subsample repeats a holdout split over freshly shuffled observations.
type Subsample struct {
	// Iterations is the number of repetitions; zero means 30.
	Iterations int
	// Split is the training fraction; zero means the 2/3 default.
	Split float64
}

func (s Subsample) Kind() string {
	return "Subsample"
}

func (s Subsample) Iters() int {
	if s.Iterations == 0 {
		return DefaultIterations
	}
	return s.Iterations
}

func (s Subsample) split() float64 {
	if s.Split == 0 {
		return DefaultSplit
	}
	return s.Split
}

func (s Subsample) Validate() error {
	if s.Iterations < 0 {
		return errors.Errorf("subsampling cannot run %d iterations", s.Iterations)
	}
	if f := s.split(); f <= 0 || f >= 1 {
		return errors.Errorf("subsample split must lie strictly between 0 and 1, got %v", f)
	}
	return nil
}

func (s Subsample) Spec() Spec {
	return Spec{Kind: s.Kind(), Iters: s.Iters(), Split: s.split()}
}

// CV partitions observations into folds, testing on each fold in turn.
type CV struct {
	// Folds is the number of folds; zero means 10.
	Folds int
}

func (c CV) Kind() string {
	return "CV"
}

func (c CV) folds() int {
	if c.Folds == 0 {
		return DefaultFolds
	}
	return c.Folds
}

func (c CV) Iters() int {
	return c.folds()
}

func (c CV) Validate() error {
	if f := c.folds(); f < 2 {
		return errors.Errorf("cross-validation needs at least 2 folds, got %d", f)
	}
	return nil
}

func (c CV) Spec() Spec {
	return Spec{Kind: c.Kind(), Iters: c.folds(), Folds: c.folds()}
}

// Default is the strategy used when an evaluation does not name one:
// a single holdout split with the default training fraction.
func Default() Strategy {
	return Holdout{}
}
