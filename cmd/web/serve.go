package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr       string
		contentDir string
		dev        bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages rendered on demand",
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := a.loadSite()
			if err != nil {
				return err
			}
			sc := a.cfg.Server
			srv := server.New(a.renderer(site), a.logger, server.Options{
				Addr:            sc.Addr,
				AssetsDir:       a.cfg.Content.AssetsDir,
				BaseURL:         a.cfg.Site.BaseURL,
				ReadTimeout:     sc.ReadTimeout,
				WriteTimeout:    sc.WriteTimeout,
				IdleTimeout:     sc.IdleTimeout,
				ShutdownTimeout: sc.ShutdownTimeout,
			})

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return srv.ListenAndServe(ctx) })
			if sc.Dev {
				dir := a.cfg.Content.Dir
				a.logger.Info("watching content", zap.String("dir", dir))
				g.Go(func() error {
					return srv.Watch(ctx, dir, func() (*content.Site, error) { return content.Load(dir) })
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&contentDir, "content", "", "content directory")
	cmd.Flags().BoolVar(&dev, "dev", false, "reload content when files change")
	registerOverrides(cmd, a, func() {
		a.override(cmd, "addr", "server.addr", addr)
		a.override(cmd, "content", "content.dir", contentDir)
		a.override(cmd, "dev", "server.dev", dev)
	})
	return cmd
}

// registerOverrides records flag values before configuration is loaded, so
// that subcommand flags take precedence over file and environment values.
// Cobra only runs the nearest persistent pre-run, so this one stands in for
// the root's.
func registerOverrides(cmd *cobra.Command, a *app, record func()) {
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		record()
		return a.setup(c)
	}
}
