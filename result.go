package incline

import (
	"bytes"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/incline-ml/incline/measure"
)

// Result is the learning curve of one experiment: for every learner and
// training percentage, the aggregated value of every measure. Rows are
// ordered by learner first and percentage second, both as submitted,
// regardless of the order the backend evaluated them in.
type Result struct {
	TaskID   string           `json:"task"`
	Measures []measure.Column `json:"measures"`
	Rows     []Row            `json:"rows"`
}

// Row is one point on a learning curve: a learner trained on a fraction of
// the available data, with one value per measure column.
type Row struct {
	Learner    string    `json:"learner"`
	Percentage float64   `json:"percentage"`
	Values     []float64 `json:"values"`
}

// stringRows bounds how much of the table String prints.
const stringRows = 10

// String summarises the result as an aligned table, truncated after the
// first rows of a large curve.
func (r *Result) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "learning curve for task %s (%d rows)\n", r.TaskID, len(r.Rows))

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "learner\tpercentage")
	for _, m := range r.Measures {
		fmt.Fprintf(w, "\t%s", m.Name)
	}
	fmt.Fprintln(w)

	n := len(r.Rows)
	if n > stringRows {
		n = stringRows
	}
	for _, row := range r.Rows[:n] {
		fmt.Fprintf(w, "%s\t%s", row.Learner, strconv.FormatFloat(row.Percentage, 'f', -1, 64))
		for _, v := range row.Values {
			fmt.Fprintf(w, "\t%s", strconv.FormatFloat(v, 'f', 4, 64))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	if len(r.Rows) > n {
		fmt.Fprintf(&b, "... %d more rows\n", len(r.Rows)-n)
	}
	return b.String()
}
