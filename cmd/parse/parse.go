// Package parse ingests a single message from the command line
package parse

import (
	"strings"

	"fjacquet/budget-tracker/cmd/common"
	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/pipeline"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:     "parse <message...>",
	Short:   "Extract, categorize and store one message",
	Example: `  budget-tracker parse "Purchase 35 SAR at examplco, card 0000"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		res := c.GetIngestor().IngestMessage(cmd.Context(), strings.Join(args, " "))
		common.PrintResult(cmd.OutOrStdout(), res)
		if res.Status == pipeline.StatusStoreFailed {
			return res.Err
		}
		return nil
	},
}
