// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"fjacquet/budget-tracker/internal/pipeline"
)

// PrintResult writes the one-line outcome of ingesting a single message.
func PrintResult(w io.Writer, res pipeline.Result) {
	switch res.Status {
	case pipeline.StatusSaved:
		fmt.Fprintf(w, "Transaction saved with category: %s\n", res.Record.Category)
	case pipeline.StatusStoreFailed:
		fmt.Fprintf(w, "Could not save transaction: %v\n", res.Err)
	default:
		fmt.Fprintln(w, "Could not parse message.")
	}
}

// PrintReport writes one line per message followed by the run totals.
func PrintReport(w io.Writer, report pipeline.Report) {
	for n, res := range report.Results {
		fmt.Fprintf(w, "[%d] ", n+1)
		PrintResult(w, res)
	}
	fmt.Fprintf(w, "\nProcessed %d message(s) from %s: %d saved, %d unparsed, %d failed to store.\n",
		len(report.Results), report.Source,
		report.Count(pipeline.StatusSaved),
		report.Count(pipeline.StatusUnparsed),
		report.Count(pipeline.StatusStoreFailed))
}

// ReportError returns an error when any message in report failed to store, so the
// command exits non-zero.
func ReportError(report pipeline.Report) error {
	if n := report.Count(pipeline.StatusStoreFailed); n > 0 {
		return fmt.Errorf("%d transaction(s) could not be stored", n)
	}
	return nil
}
