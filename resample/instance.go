package resample

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Instance is a concrete partition of n observations into train and test
// index sets, one pair per iteration. Instances passed to an evaluation are
// used verbatim, which keeps every variant in a batch on identical splits.
type Instance struct {
	Scheme string  `json:"scheme"`
	Train  [][]int `json:"train"`
	Test   [][]int `json:"test"`
}

func (in *Instance) Kind() string {
	return "Instance"
}

func (in *Instance) Iters() int {
	return len(in.Train)
}

func (in *Instance) Validate() error {
	if len(in.Train) == 0 {
		return errors.New("instance holds no iterations")
	}
	if len(in.Train) != len(in.Test) {
		return errors.Errorf("instance has %d train sets but %d test sets", len(in.Train), len(in.Test))
	}
	for i := range in.Train {
		if len(in.Train[i]) == 0 || len(in.Test[i]) == 0 {
			return errors.Errorf("iteration %d has an empty split", i)
		}
	}
	return nil
}

func (in *Instance) Spec() Spec {
	return Spec{Kind: in.Kind(), Iters: in.Iters(), Train: in.Train, Test: in.Test}
}

// Instantiate materialises a holdout description over n observations.
func (h Holdout) Instantiate(n int, seed int64) (*Instance, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	train, test, err := holdoutSplit(n, h.split(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return &Instance{Scheme: h.Kind(), Train: [][]int{train}, Test: [][]int{test}}, nil
}

// Instantiate materialises a subsample description over n observations.
func (s Subsample) Instantiate(n int, seed int64) (*Instance, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	in := &Instance{Scheme: s.Kind()}
	for i := 0; i < s.Iters(); i++ {
		train, test, err := holdoutSplit(n, s.split(), rng)
		if err != nil {
			return nil, err
		}
		in.Train = append(in.Train, train)
		in.Test = append(in.Test, test)
	}
	return in, nil
}

// Instantiate materialises a cross-validation description over n observations.
func (c CV) Instantiate(n int, seed int64) (*Instance, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	k := c.folds()
	if n < k {
		return nil, errors.Errorf("cannot split %d observations into %d folds", n, k)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	in := &Instance{Scheme: c.Kind()}
	for i := 0; i < k; i++ {
		// Observations are dealt to folds round-robin so fold sizes
		// differ by at most one.
		var train, test []int
		for j, o := range perm {
			if j%k == i {
				test = append(test, o)
			} else {
				train = append(train, o)
			}
		}
		in.Train = append(in.Train, train)
		in.Test = append(in.Test, test)
	}
	return in, nil
}

func holdoutSplit(n int, split float64, rng *rand.Rand) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, errors.Errorf("cannot split %d observations into train and test", n)
	}
	cut := int(split * float64(n))
	if cut < 1 {
		cut = 1
	}
	if cut >= n {
		cut = n - 1
	}
	perm := rng.Perm(n)
	train = append(train, perm[:cut]...)
	test = append(test, perm[cut:]...)
	return train, test, nil
}
