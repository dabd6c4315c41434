package main

import (
	"encoding/json"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/5u5urrus/retriever/internal/fetchclient"
	"github.com/5u5urrus/retriever/internal/headers"
)

// newSpiderWorkerCommand is the child process entrypoint for the
// CRAWLER_FRAMEWORK backend: it runs one colly fetch and prints the
// WorkerResult as JSON on stdout. It's not meant to be invoked by hand,
// the same way the reference system's ScrapyClient spawns a dedicated
// multiprocessing.Process instead of running Scrapy inline.
func newSpiderWorkerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "spider-worker",
		Hidden: true,
		RunE:   runSpiderWorker,
	}
	cmd.Flags().String("url", "", "Target URL")
	cmd.Flags().String("headers", "{}", "JSON-encoded header map")
	cmd.Flags().Int("timeout", 10, "Timeout in seconds")
	return cmd
}

func runSpiderWorker(cmd *cobra.Command, _ []string) error {
	url, _ := cmd.Flags().GetString("url")
	headerJSON, _ := cmd.Flags().GetString("headers")
	timeoutSeconds, _ := cmd.Flags().GetInt("timeout")

	var hdrs headers.HttpHeaders
	if err := json.Unmarshal([]byte(headerJSON), &hdrs); err != nil {
		hdrs = headers.HttpHeaders{}
	}

	result := fetchclient.RunSpiderWorker(url, hdrs, time.Duration(timeoutSeconds)*time.Second)
	out, err := jsoniter.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
