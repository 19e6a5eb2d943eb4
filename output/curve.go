// Package output provides different formats of output for learning curve results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/incline-ml/incline"
)

// CurveFormatter serialises a learning curve result for writing.
type CurveFormatter func(result *incline.Result) (string, error)

// JSONCurveFormatter outputs results in a JSON format.
func JSONCurveFormatter(result *incline.Result) (string, error) {
	v, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CSVCurveFormatter outputs results in CSV format: one record per curve
// point, one column per measure, headed by the disambiguated column keys.
func CSVCurveFormatter(result *incline.Result) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)

	h := []string{"learner", "percentage"}
	for _, m := range result.Measures {
		h = append(h, m.ID)
	}
	w.Write(h)

	for _, row := range result.Rows {
		record := make([]string, len(row.Values)+2)
		record[0] = row.Learner
		record[1] = strconv.FormatFloat(row.Percentage, 'f', -1, 64)
		for i, v := range row.Values {
			record[i+2] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		w.Write(record)
	}
	w.Flush()
	return b.String(), w.Error()
}
