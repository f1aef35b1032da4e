package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub002/internal/config"
	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/markdown"
	"github.com/milburnr/fcs-site-sub002/internal/observability"
	"github.com/milburnr/fcs-site-sub002/internal/page"
	"github.com/milburnr/fcs-site-sub002/internal/report"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configFile string
	verbose    bool
	noColor    bool
	overrides  map[string]any

	cfg    config.Config
	logger *zap.Logger
	md     *markdown.Renderer
}

func newApp() *app {
	return &app{overrides: map[string]any{}, md: markdown.New()}
}

// override records a flag value as a config override when the user set it.
func (a *app) override(cmd *cobra.Command, flag, key string, value any) {
	if cmd.Flags().Changed(flag) {
		a.overrides[key] = value
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	opts := []config.Option{config.WithOverrides(a.overrides)}
	if a.configFile != "" {
		opts = append(opts, config.WithFile(a.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(level, cfg.Log.Development || cfg.Server.Dev)
	if err != nil {
		return fmt.Errorf("initialise logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger.Named("fcs")
	cmd.SetContext(observability.WithLogger(cmd.Context(), a.logger))
	if cfg.File != "" {
		a.logger.Debug("configuration loaded", zap.String("file", cfg.File))
	}
	return nil
}

func (a *app) loadSite() (*content.Site, error) {
	site, err := content.Load(a.cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", a.cfg.Content.Dir, err)
	}
	return site, nil
}

func (a *app) renderer(site *content.Site) *page.Renderer {
	s := a.cfg.Site
	return page.New(page.Options{
		Business:      a.cfg.Business,
		Site:          site,
		Markdown:      a.md,
		BaseURL:       s.BaseURL,
		SiteName:      s.Name,
		FormID:        s.FormID,
		MapsRegion:    s.MapsRegion,
		DefaultImage:  s.DefaultImage,
		CopyrightYear: s.CopyrightYear,
		FormHeight:    s.FormHeight,
		MapHeight:     s.MapHeight,
	})
}

func (a *app) reporter(cmd *cobra.Command) *report.Reporter {
	return report.New(cmd.OutOrStdout(), a.noColor || color.NoColor)
}
