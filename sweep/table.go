package sweep

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// WriteTable renders the records as an aligned text table, one scenario
// per row. Non-convergent scenarios and absent values print as dashes.
func WriteTable(w io.Writer, records []Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MULT\tSTATUS\tMIN-SV\tINJECTION\tL-INDEX\tBRANCH\tPATH")
	for _, rec := range records {
		if !rec.Converged {
			fmt.Fprintf(tw, "%.3f\tdiverged\t-\t-\t-\t-\t-\n", rec.Multiplier)

			continue
		}
		fmt.Fprintf(tw, "%.3f\tok\t%s\t%s @ %d\t%s @ %d\t%s @ %d->%d\t%s @ %d\n",
			rec.Multiplier,
			cell(rec.MinSV),
			cell(rec.Injection), rec.CriticalInjection,
			cell(rec.LIndex), rec.CriticalLIndex,
			cell(rec.Branch), rec.CriticalBranch.Sending, rec.CriticalBranch.Receiving,
			cell(rec.Path), rec.CriticalPath,
		)
	}

	return tw.Flush()
}

// cell formats one value, hiding NaN behind a dash.
func cell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}

	return fmt.Sprintf("%.4f", v)
}
