package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/5u5urrus/retriever/internal/fetchclient"
)

// engines and backends are what the describe subcommand prints, mirroring
// the reference system's index()/root endpoint, which lists the registered
// engines and fetch tools so a caller can discover what's available
// without reading source.
var engines = []string{"baidu", "bing", "google", "sogou", "so", "douban", "duckduckgo"}

var backends = []fetchclient.Kind{
	fetchclient.KindDirectHTTP,
	fetchclient.KindCommandLine,
	fetchclient.KindProxyGateway,
	fetchclient.KindHeadlessA,
	fetchclient.KindHeadlessB,
	fetchclient.KindChallengeSolver,
	fetchclient.KindRenderAPI,
	fetchclient.KindCrawlerFramework,
	fetchclient.KindStaticParser,
}

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List the available search engines and fetch backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Println("engines:")
			for _, e := range engines {
				fmt.Println("  " + e)
			}
			fmt.Println("backends:")
			for _, b := range backends {
				fmt.Println("  " + string(b))
			}
			return nil
		},
	}
}
