// Package categorize handles one-off merchant categorization
package categorize

import (
	"fmt"
	"strings"

	"fjacquet/budget-tracker/cmd/root"

	"github.com/spf13/cobra"
)

var (
	merchant string
	info     string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Ask the model which category a merchant belongs to",
	Long: `Categorize a merchant into the configured category set without storing anything.
Prints the fallback category when the model is unavailable or answers off-list.`,
	Args: cobra.NoArgs,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Merchant name to categorize")
	Cmd.Flags().StringVarP(&info, "info", "n", "", "Additional description (optional)")
	_ = Cmd.MarkFlagRequired("merchant")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(merchant) == "" {
		return fmt.Errorf("merchant name is required for categorization")
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	category := c.GetCategorizer().Categorize(cmd.Context(), merchant, info)
	fmt.Fprintf(cmd.OutOrStdout(), "Category: %s\n", category)
	return nil
}
