package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	a := newApp()
	root := &cobra.Command{
		Use:           "web",
		Short:         "Build, lint and serve the FCS Construction site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file (default config.yaml when present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newServeCmd(a),
		newBuildCmd(a),
		newLintCmd(a),
		newImportCmd(a),
	)
	return root
}
