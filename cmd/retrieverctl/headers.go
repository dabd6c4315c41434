package main

import (
	"bufio"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/5u5urrus/retriever/internal/headers"
)

// buildUpstreamHeaders collects the -H/--header flags, a --cookie value,
// and a --raw-request burp-style capture file into one HttpHeaders map,
// adapted from the teacher's --burp raw-request loading and -H header
// flag handling in spider.go.
func buildUpstreamHeaders(cmd *cobra.Command) headers.HttpHeaders {
	out := headers.HttpHeaders{}

	if rawRequestFile, _ := cmd.Flags().GetString("raw-request"); rawRequestFile != "" {
		if f, err := os.Open(rawRequestFile); err == nil {
			defer f.Close()
			if req, err := http.ReadRequest(bufio.NewReader(f)); err == nil {
				for k, v := range req.Header {
					if len(v) > 0 {
						out[headers.Canonicalize(k)] = strings.TrimSpace(v[0])
					}
				}
				if cookie := req.Header.Get("Cookie"); cookie != "" {
					out["Cookie"] = cookie
				}
			}
		}
	}

	if cookie, _ := cmd.Flags().GetString("cookie"); cookie != "" {
		out["Cookie"] = cookie
	}

	if rawHeaders, _ := cmd.Flags().GetStringArray("header"); len(rawHeaders) > 0 {
		for _, h := range rawHeaders {
			parts := strings.SplitN(h, ":", 2)
			if len(parts) != 2 {
				continue
			}
			out[headers.Canonicalize(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
		}
	}

	return out
}

func addHeaderFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "Header to use (repeat -H to set multiple)")
	cmd.Flags().String("cookie", "", "Cookie to use (testA=a; testB=b)")
	cmd.Flags().String("raw-request", "", "Load headers and cookie from a captured raw HTTP request file")
}
