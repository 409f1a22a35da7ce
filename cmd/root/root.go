// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"os"

	"fjacquet/budget-tracker/internal/config"
	"fjacquet/budget-tracker/internal/container"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to every command
type CommonFlags struct {
	ConfigFile string
	DBPath     string
	Provider   string
	Model      string
	NoColor    bool
}

var (
	// Cmd is the root command. Without a subcommand it starts the interactive loop.
	Cmd = &cobra.Command{
		Use:   "budget-tracker",
		Short: "Track spending from bank SMS messages and statements with a language model.",
		Long: `budget-tracker turns free-text bank notifications (Arabic or English) into
categorized transaction records stored in a local SQLite file.

Run it without a command to paste messages interactively, or use batch, pdf,
export, summary, ask and web for one-shot work.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			if SharedFlags.NoColor {
				color.NoColor = true
			}
			return loadConfig()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return CloseContainer()
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	cfg       *config.Config
	appCtr    *container.Container
	injected  bool
	initiated bool
)

// RunE is assigned in init to avoid an initialization cycle with GetContainer.
func init() {
	Cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := GetContainer()
		if err != nil {
			return err
		}
		return c.NewShell(cmd.InOrStdin(), cmd.OutOrStdout(), SharedFlags.NoColor).Run(cmd.Context())
	}
}

// Init initializes the root command flags. It is safe to call more than once.
func Init() {
	if initiated {
		return
	}
	initiated = true

	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.budget-tracker, .budget-tracker or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.DBPath, "db", "", "Path of the SQLite transaction store")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Provider, "provider", "", "Model provider: ollama, openai, gemini or anthropic")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Model, "model", "", "Model name (default depends on provider)")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.NoColor, "no-color", false, "Disable colored output")
}

func loadConfig() error {
	if injected {
		return nil
	}
	loaded, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if err := loaded.Apply(config.Overrides{
		StorePath: SharedFlags.DBPath,
		Provider:  SharedFlags.Provider,
		Model:     SharedFlags.Model,
	}); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// GetConfig returns the configuration loaded for the running command.
func GetConfig() *config.Config {
	return cfg
}

// GetContainer builds the application container on first use. Commands that never
// call it never open the store or contact a provider.
func GetContainer() (*container.Container, error) {
	if appCtr != nil {
		return appCtr, nil
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	ctx := Cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	appCtr = c
	return c, nil
}

// SetContainer installs a prebuilt container, used by tests. Passing nil clears it.
func SetContainer(c *container.Container) {
	appCtr = c
	injected = c != nil
	if c != nil {
		cfg = c.GetConfig()
	}
}

// CloseContainer releases the container if one was built.
func CloseContainer() error {
	if appCtr == nil || injected {
		return nil
	}
	err := appCtr.Close()
	appCtr = nil
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return nil
}
