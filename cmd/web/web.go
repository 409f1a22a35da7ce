// Package web launches the dashboard
package web

import (
	"fmt"

	"fjacquet/budget-tracker/cmd/root"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the web command
var Cmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the dashboard in a browser",
	Long: `Serve a local dashboard to paste messages, see the summary, ask questions
and download exports. Stops on Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: webFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8501)")
}

func webFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	listen := addr
	if listen == "" {
		listen = c.GetConfig().Web.Addr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dashboard on http://%s\n", displayAddr(listen))
	return c.NewWebServer().Run(cmd.Context(), listen)
}

func displayAddr(a string) string {
	if len(a) > 0 && a[0] == ':' {
		return "localhost" + a
	}
	return a
}
