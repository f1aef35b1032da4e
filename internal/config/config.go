// Package config assembles runtime configuration from defaults, an optional
// YAML file, FCS_* environment variables and explicit overrides, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

const (
	envPrefix              = "FCS"
	defaultConfigFile      = "config.yaml"
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultContentDir      = "content"
	defaultAssetsDir       = "public/assets"
	defaultOutDir          = "dist"
	defaultManifest        = ".fcs-manifest.db"
	defaultBaseURL         = "http://localhost:8080"
	defaultMapsRegion      = "FL"
	defaultFormHeight      = 600
	defaultMapHeight       = 450
	defaultLogLevel        = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig     `mapstructure:"server"`
	Content  ContentConfig    `mapstructure:"content"`
	Build    BuildConfig      `mapstructure:"build"`
	Site     SiteConfig       `mapstructure:"site"`
	Business content.Business `mapstructure:"business"`
	Log      LogConfig        `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Dev             bool          `mapstructure:"dev"`
}

// ContentConfig locates the descriptor table and static assets.
type ContentConfig struct {
	Dir       string `mapstructure:"dir"`
	AssetsDir string `mapstructure:"assets_dir"`
}

// BuildConfig controls static generation.
type BuildConfig struct {
	OutDir      string `mapstructure:"out_dir"`
	Workers     int    `mapstructure:"workers"`
	Incremental bool   `mapstructure:"incremental"`
	Manifest    string `mapstructure:"manifest"`
	Audit       bool   `mapstructure:"audit"`
}

// SiteConfig holds values rendered into every page besides the business.
type SiteConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Name          string `mapstructure:"name"`
	CopyrightYear int    `mapstructure:"copyright_year"`
	FormID        string `mapstructure:"form_id"`
	FormHeight    int    `mapstructure:"form_height"`
	MapsRegion    string `mapstructure:"maps_region"`
	MapHeight     int    `mapstructure:"map_height"`
	DefaultImage  string `mapstructure:"default_image"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	file      string
	explicit  bool
	useEnv    bool
	overrides map[string]any
	now       func() time.Time
}

// WithFile reads configuration from path. Unlike the default file, an
// explicit file must exist.
func WithFile(path string) Option {
	return func(o *loaderOptions) {
		if strings.TrimSpace(path) != "" {
			o.file = path
			o.explicit = true
		}
	}
}

// WithOverrides applies values keyed by dotted path (e.g. "server.addr").
// They take precedence over every other source.
func WithOverrides(values map[string]any) Option {
	return func(o *loaderOptions) {
		if o.overrides == nil {
			o.overrides = map[string]any{}
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// WithoutEnv disables FCS_* environment lookups.
func WithoutEnv() Option {
	return func(o *loaderOptions) {
		o.useEnv = false
	}
}

// WithClock sets the clock used for the default copyright year.
func WithClock(now func() time.Time) Option {
	return func(o *loaderOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// Load assembles the configuration.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{file: defaultConfigFile, useEnv: true, now: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	v := viper.New()
	setDefaults(v, options.now())

	var used string
	if options.file != "" {
		_, statErr := os.Stat(options.file)
		switch {
		case statErr == nil:
			v.SetConfigFile(options.file)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("config: read %s: %w", options.file, err)
			}
			used = options.file
		case options.explicit || !errors.Is(statErr, fs.ErrNotExist):
			return Config{}, fmt.Errorf("config: %w", statErr)
		}
	}

	if options.useEnv {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	for k, val := range options.overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.File = used
	normalize(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Every key is given a default so that AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, now time.Time) {
	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.read_timeout", defaultReadTimeout)
	v.SetDefault("server.write_timeout", defaultWriteTimeout)
	v.SetDefault("server.idle_timeout", defaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("server.dev", false)

	v.SetDefault("content.dir", defaultContentDir)
	v.SetDefault("content.assets_dir", defaultAssetsDir)

	v.SetDefault("build.out_dir", defaultOutDir)
	v.SetDefault("build.workers", 0)
	v.SetDefault("build.incremental", false)
	v.SetDefault("build.manifest", defaultManifest)
	v.SetDefault("build.audit", true)

	v.SetDefault("site.base_url", defaultBaseURL)
	v.SetDefault("site.name", "")
	v.SetDefault("site.copyright_year", now.Year())
	v.SetDefault("site.form_id", "")
	v.SetDefault("site.form_height", defaultFormHeight)
	v.SetDefault("site.maps_region", defaultMapsRegion)
	v.SetDefault("site.map_height", defaultMapHeight)
	v.SetDefault("site.default_image", "")

	for _, k := range []string{"name", "legal_name", "phone", "phone_raw", "email", "url", "logo", "image", "price_range", "license",
		"address.street", "address.city", "address.region", "address.postal_code", "address.country"} {
		v.SetDefault("business."+k, "")
	}
	v.SetDefault("business.geo.lat", 0.0)
	v.SetDefault("business.geo.lng", 0.0)

	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.development", false)
}

func normalize(cfg *Config) {
	cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/")
	if cfg.Site.Name == "" {
		cfg.Site.Name = cfg.Business.Name
	}
	if cfg.Business.URL == "" {
		cfg.Business.URL = cfg.Site.BaseURL
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
}

func validate(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		missing = append(missing, "Server.Addr")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		missing = append(missing, "Content.Dir")
	}
	if strings.TrimSpace(cfg.Build.OutDir) == "" {
		missing = append(missing, "Build.OutDir")
	}
	if cfg.Build.Workers < 0 {
		missing = append(missing, "Build.Workers")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		missing = append(missing, "Site.BaseURL")
	}
	if cfg.Site.CopyrightYear <= 0 {
		missing = append(missing, "Site.CopyrightYear")
	}
	if strings.TrimSpace(cfg.Business.Name) == "" {
		missing = append(missing, "Business.Name")
	}
	if strings.TrimSpace(cfg.Business.Phone) == "" {
		missing = append(missing, "Business.Phone")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}
