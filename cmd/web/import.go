package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/milburnr/fcs-site-sub002/internal/importer"
)

const importTimeout = 30 * time.Second

func newImportCmd(a *app) *cobra.Command {
	var (
		selector string
		route    string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "import <file|url>",
		Short: "Convert a legacy HTML page into a descriptor draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			rc, err := openSource(cmd, src)
			if err != nil {
				return err
			}
			defer rc.Close()

			p, err := importer.Import(cmd.Context(), rc, selector)
			if err != nil {
				return err
			}
			if route == "" {
				route = routeFromSource(src)
			}
			data, err := yaml.Marshal(p.Descriptor(route))
			if err != nil {
				return fmt.Errorf("import: encode: %w", err)
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("import: write %s: %w", output, err)
			}
			a.reporter(cmd).Step("wrote %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&selector, "selector", "s", "main", "CSS selector of the content root")
	cmd.Flags().StringVarP(&route, "route", "r", "", "route of the new page (default derived from the source)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the descriptor here instead of stdout")
	return cmd
}

func openSource(cmd *cobra.Command, src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return importer.Fetch(cmd.Context(), &http.Client{Timeout: importTimeout}, src)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return f, nil
}

// routeFromSource derives a route from the last path segment of a file name
// or URL, dropping any extension.
func routeFromSource(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	src = strings.TrimSuffix(src, "/")
	if i := strings.Index(src, "://"); i >= 0 {
		rest := src[i+3:]
		if !strings.Contains(rest, "/") {
			return "/"
		}
	}
	base := src[strings.LastIndex(src, "/")+1:]
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" || base == "index" {
		return "/"
	}
	return "/" + strings.ToLower(base) + "/"
}
