// Package batch imports a file of newline-delimited messages
package batch

import (
	"fjacquet/budget-tracker/cmd/common"
	"fjacquet/budget-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Import a text file with one bank message per line",
	Long: `Import a text file where every non-blank line is one bank notification.
Each line is extracted, categorized and stored independently; a line that cannot
be parsed is reported and skipped.

Example:
  budget-tracker batch messages.txt`,
	Args: cobra.ExactArgs(1),
	RunE: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	report, err := c.GetIngestor().IngestFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	common.PrintReport(cmd.OutOrStdout(), report)
	return common.ReportError(report)
}
