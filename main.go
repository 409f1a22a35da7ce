package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fjacquet/budget-tracker/cmd/ask"
	"fjacquet/budget-tracker/cmd/batch"
	"fjacquet/budget-tracker/cmd/categorize"
	"fjacquet/budget-tracker/cmd/export"
	"fjacquet/budget-tracker/cmd/parse"
	"fjacquet/budget-tracker/cmd/pdf"
	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/cmd/summary"
	"fjacquet/budget-tracker/cmd/web"
	"fjacquet/budget-tracker/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// .env first so LOG_LEVEL can come from it
	config.LoadEnv()

	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(pdf.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(web.Cmd)
}

// configureLogLevel sets the global logrus level before any logger is built.
func configureLogLevel() {
	level, err := logrus.ParseLevel(strings.ToLower(config.GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
