package learner

import (
	"fmt"
)

// Downsampled is a learner derived from a base learner which, at evaluation
// time, trains only on a fraction of the training split it is assigned.
// When Stratify is set the fraction is drawn stratified by target label.
// Downsampled learners exist only for the duration of one batched evaluation.
type Downsampled struct {
	// ID is the derived identifier the base learner carries through
	// evaluation. It must be unique across every variant submitted in
	// the same batch.
	ID         string  `json:"id"`
	Base       Learner `json:"base"`
	Percentage float64 `json:"percentage"`
	Stratify   bool    `json:"stratify,omitempty"`
}

// Downsample derives a down-sampling variant of l that trains on a
// percentage-fraction subsample. The caller assigns the derived identifier;
// DeriveID builds the conventional one.
func Downsample(l Learner, percentage float64, stratify bool) Downsampled {
	return Downsampled{
		ID:         l.ID,
		Base:       l,
		Percentage: percentage,
		Stratify:   stratify,
	}
}

// DeriveID suffixes a base learner identifier with the 1-based position of
// its percentage, so variants of one learner never collide with each other.
func DeriveID(base string, position int) string {
	return fmt.Sprintf("%s.%d", base, position)
}
