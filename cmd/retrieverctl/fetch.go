package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/5u5urrus/retriever/internal/fetchclient"
)

func newFetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [urls...]",
		Short: "Fetch one or more URLs through a given backend",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFetch,
	}
	cmd.Flags().StringP("backend", "b", string(fetchclient.KindDirectHTTP), "Fetch backend to use")
	cmd.Flags().StringP("mode", "m", string(fetchclient.ModeText), "Response mode: text|html")
	addHeaderFlags(cmd)
	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) > 20 {
		return fmt.Errorf("at most 20 urls may be fetched per call, got %d", len(args))
	}

	backend, _ := cmd.Flags().GetString("backend")
	mode, _ := cmd.Flags().GetString("mode")
	hdrs := buildUpstreamHeaders(cmd)

	cfg := loadConfig()
	env := fetchclient.ProcessFetch(context.Background(), cfg, args, fetchclient.Kind(strings.ToUpper(backend)), hdrs, fetchclient.Mode(mode))
	return printJSON(env)
}
