// Package pdf imports a bank statement PDF
package pdf

import (
	"fjacquet/budget-tracker/cmd/common"
	"fjacquet/budget-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the pdf command
var Cmd = &cobra.Command{
	Use:   "pdf <file>",
	Short: "Import the transactions of a bank statement PDF",
	Long: `Extract the text of a bank statement PDF, split it into one block per
transaction (a block starts at a yyyy/mm/dd date) and import every block.

Example:
  budget-tracker pdf statement.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: pdfFunc,
}

func pdfFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	report, err := c.GetIngestor().IngestPDF(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	common.PrintReport(cmd.OutOrStdout(), report)
	return common.ReportError(report)
}
