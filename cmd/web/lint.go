package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milburnr/fcs-site-sub002/internal/lint"
)

func newLintCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check the descriptor table for SEO and link problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := a.reporter(cmd)
			site, err := a.loadSite()
			if err != nil {
				return err
			}
			result := lint.Check(site, lint.Options{Markdown: a.md})
			rep.Lint(result)
			switch {
			case !result.OK():
				return fmt.Errorf("lint: %d error(s)", len(result.Errors()))
			case strict && len(result.Warnings()) > 0:
				return fmt.Errorf("lint: %d warning(s) in strict mode", len(result.Warnings()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}
