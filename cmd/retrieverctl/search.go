package main

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/5u5urrus/retriever/internal/engine"
	"github.com/5u5urrus/retriever/internal/fetchclient"
	"github.com/5u5urrus/retriever/internal/registry"
)

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search one of the seven supported engines",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	cmd.Flags().StringP("engine", "e", "baidu", "Search engine: baidu|bing|google|sogou|so|douban|duckduckgo")
	cmd.Flags().StringP("backend", "b", string(fetchclient.KindDirectHTTP), "Fetch backend used for both the SERP and secondary fetches")
	cmd.Flags().StringP("mode", "m", string(engine.ModeText), "Response mode: link|html|text")
	cmd.Flags().IntP("links", "n", 2, "Max secondary links to fetch")
	cmd.Flags().Bool("suggest", false, "Use DuckDuckGo's autocomplete API instead of a full search (duckduckgo only)")
	cmd.Flags().Bool("force-new", false, "Bypass and replace the registry's cached engine instance")
	addHeaderFlags(cmd)
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	engineName, _ := cmd.Flags().GetString("engine")
	backend, _ := cmd.Flags().GetString("backend")
	mode, _ := cmd.Flags().GetString("mode")
	linksNum, _ := cmd.Flags().GetInt("links")
	suggest, _ := cmd.Flags().GetBool("suggest")
	forceNew, _ := cmd.Flags().GetBool("force-new")
	hdrs := buildUpstreamHeaders(cmd)

	cfg := loadConfig()
	reg := registry.New(cfg)
	ctx := context.Background()

	if suggest {
		if strings.ToLower(engineName) != "duckduckgo" {
			return fmt.Errorf("--suggest is only supported for the duckduckgo engine")
		}
		ddg, err := reg.DuckDuckGo(fetchclient.Kind(strings.ToUpper(backend)), forceNew)
		if err != nil {
			return err
		}
		env := ddg.SearchSuggest(ctx, query, hdrs)
		return printJSON(env)
	}

	svc, err := reg.Get(engineName, fetchclient.Kind(strings.ToUpper(backend)), forceNew)
	if err != nil {
		return err
	}
	env := svc.Search(ctx, query, engine.Mode(mode), linksNum, hdrs)
	return printJSON(env)
}

func printJSON(v any) error {
	out, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
