// Command retrieverctl is the CLI driver for the multi-engine web
// retrieval service: it exposes "fetch" (the nine-backend fetch
// contract), "search" (the seven search-engine services), "describe"
// (lists available engines/backends) and a hidden "spider-worker"
// subcommand used internally by the CRAWLER_FRAMEWORK backend's child
// process. Structured the way the teacher's single-command main.go wires
// cobra flags, generalized to a command tree since this CLI fronts more
// than one operation.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/5u5urrus/retriever/internal/config"
	"github.com/5u5urrus/retriever/internal/logging"
)

const (
	CLIName = "retrieverctl"
	VERSION = "v1.0"
)

var root = &cobra.Command{
	Use:   CLIName,
	Short: fmt.Sprintf("Multi-engine web retrieval CLI - %s", VERSION),
}

func main() {
	root.PersistentFlags().Bool("debug", false, "Debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logging.SetLevel(logrus.DebugLevel)
		}
	}

	root.AddCommand(newFetchCommand())
	root.AddCommand(newSearchCommand())
	root.AddCommand(newDescribeCommand())
	root.AddCommand(newSpiderWorkerCommand())

	root.CompletionOptions.DisableDefaultCmd = true

	if err := root.Execute(); err != nil {
		logging.L.Error(err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	return config.Load()
}
