// Package summary prints spending totals
package summary

import (
	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Print total spending and the breakdown by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		records, err := c.GetStore().ListAll(cmd.Context())
		if err != nil {
			return err
		}
		return report.Summarize(records).WriteText(cmd.OutOrStdout())
	},
}
