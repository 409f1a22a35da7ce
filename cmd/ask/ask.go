// Package ask answers a question about stored transactions
package ask

import (
	"fmt"
	"strings"

	"fjacquet/budget-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:     "ask <question...>",
	Short:   "Ask the model a question about your transactions",
	Example: `  budget-tracker ask "How much did I spend on groceries?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question must not be empty")
		}
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		records, err := c.GetStore().ListAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.GetAnswerer().Answer(cmd.Context(), records, question))
		return nil
	},
}
