package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub002/internal/build"
	"github.com/milburnr/fcs-site-sub002/internal/lint"
	"github.com/milburnr/fcs-site-sub002/internal/manifest"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		out         string
		workers     int
		incremental bool
		manifestDB  string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page into a static directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := a.reporter(cmd)
			bc := a.cfg.Build

			rep.Step("loading content from %s", a.cfg.Content.Dir)
			site, err := a.loadSite()
			if err != nil {
				return err
			}

			var store *manifest.Store
			if bc.Manifest != "" {
				store, err = manifest.Open(bc.Manifest)
				if err != nil {
					return err
				}
				defer func() {
					if cerr := store.Close(); cerr != nil {
						a.logger.Warn("close manifest", zap.Error(cerr))
					}
				}()
			}

			rep.Step("building %d page(s) into %s", len(site.Routes()), bc.OutDir)
			b := build.New(a.renderer(site), store, a.logger, build.Options{
				OutDir:      bc.OutDir,
				AssetsDir:   a.cfg.Content.AssetsDir,
				BaseURL:     a.cfg.Site.BaseURL,
				Workers:     bc.Workers,
				Incremental: bc.Incremental,
				Audit:       bc.Audit,
			})
			res, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}
			rep.Build(res)
			if n := len(lint.Report{Findings: res.Findings}.Errors()); n > 0 {
				return fmt.Errorf("build: %d audit error(s)", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent renders (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&incremental, "incremental", false, "skip pages whose output is unchanged")
	cmd.Flags().StringVar(&manifestDB, "manifest", "", "manifest database path")
	registerOverrides(cmd, a, func() {
		a.override(cmd, "out", "build.out_dir", out)
		a.override(cmd, "workers", "build.workers", workers)
		a.override(cmd, "incremental", "build.incremental", incremental)
		a.override(cmd, "manifest", "build.manifest", manifestDB)
	})
	return cmd
}
