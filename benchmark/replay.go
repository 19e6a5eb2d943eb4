package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ReplayRunner serves evaluations from the per-iteration values a previous
// benchmark run recorded, so tables can be reshaped without running the
// backend again. The backing file is CSV with one observation per line:
//
//	variant,measure,iteration,value
//
// The measure field holds the raw measure identifier. Aggregation happens at
// replay time, so one recorded run can serve acc.test.mean and acc.test.sd
// from the same values.
type ReplayRunner struct {
	path string
}

// NewReplayRunner creates a runner replaying the recorded results at path.
func NewReplayRunner(path string) *ReplayRunner {
	return &ReplayRunner{path: path}
}

type replayKey struct {
	variant string
	measure string
}

// Evaluate aggregates the recorded per-iteration values for every requested
// variant and measure. A variant or measure absent from the recording is an
// evaluation error.
func (r *ReplayRunner) Evaluate(req Request) (*Table, error) {
	recorded, err := r.read()
	if err != nil {
		return nil, err
	}

	table := &Table{Columns: req.Columns()}
	for _, variant := range req.Variants {
		values := make([]float64, len(req.Measures))
		for i, m := range req.Measures {
			iters, ok := recorded[replayKey{variant.ID, m.ID}]
			if !ok {
				return nil, &EvaluationError{
					RunID:   req.RunID,
					Variant: variant.ID,
					Reason:  fmt.Sprintf("no recorded values for measure %s in %s", m.ID, r.path),
				}
			}
			values[i] = m.Combine(iters)
		}
		table.Rows = append(table.Rows, TableRow{Variant: variant.ID, Values: values})
	}
	return table, nil
}

func (r *ReplayRunner) read() (map[replayKey][]float64, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening recorded results %s", r.path)
	}
	defer f.Close()

	recorded := make(map[replayKey][]float64)
	c := csv.NewReader(f)
	c.FieldsPerRecord = 4

	var line int
	for {
		record, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading recorded results %s", r.path)
		}
		line++

		v, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			if line == 1 {
				// Header line.
				continue
			}
			return nil, errors.Wrapf(err, "recorded results %s: bad value on line %d", r.path, line)
		}

		k := replayKey{variant: record[0], measure: record[1]}
		recorded[k] = append(recorded[k], v)
	}
	return recorded, nil
}
