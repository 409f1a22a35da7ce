// Package export writes stored transactions to a file
package export

import (
	"fmt"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export <markdown|excel|csv> <file>",
	Short: "Export every stored transaction as Markdown, Excel or CSV",
	Example: `  budget-tracker export markdown transactions.md
  budget-tracker export excel transactions.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) error {
	// reject unknown formats before touching the store
	if _, err := report.ParseFormat(args[0]); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	n, err := c.GetExporter().Export(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transaction(s) to %s\n", n, args[1])
	return nil
}
