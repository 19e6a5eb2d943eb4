package measure

import (
	"strconv"
)

// Column is a resolved table column for one aggregated measure: the unique
// identifier used as the column key and the name shown to people.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"display_name"`
}

// Disambiguate resolves the measures of one evaluation into table columns
// with collision-free identifiers and display names. Two rules apply, in
// order:
//
//  1. Column keys are made unique: a key already taken by an earlier measure
//     gains the measure's 1-based position as an extra suffix, so a second
//     "acc.test.mean" at position 3 becomes "acc.test.mean.3".
//  2. Display names shared by two or more measures are replaced, for every
//     sharer, by the measure's (now unique) column key.
//
// The input order is preserved throughout.
func Disambiguate(measures []Measure) []Column {
	columns := make([]Column, len(measures))

	taken := make(map[string]bool, len(measures))
	for i, m := range measures {
		key := m.Key()
		for taken[key] {
			key = key + "." + strconv.Itoa(i+1)
		}
		taken[key] = true
		columns[i] = Column{ID: key, Name: m.Name}
	}

	names := make(map[string]int, len(measures))
	for _, c := range columns {
		names[c.Name]++
	}
	for i, c := range columns {
		if names[c.Name] > 1 {
			columns[i].Name = c.ID
		}
	}

	return columns
}
