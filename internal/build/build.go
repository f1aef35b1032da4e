// Package build renders every route of the site to static files.
package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milburnr/fcs-site-sub002/internal/lint"
	"github.com/milburnr/fcs-site-sub002/internal/manifest"
	"github.com/milburnr/fcs-site-sub002/internal/observability"
	"github.com/milburnr/fcs-site-sub002/internal/page"
)

const (
	indexFile    = "index.html"
	notFoundFile = "404.html"
	sitemapFile  = "sitemap.xml"
	robotsFile   = "robots.txt"
)

// Options configures a build.
type Options struct {
	OutDir      string
	AssetsDir   string
	BaseURL     string
	Workers     int
	Incremental bool
	Audit       bool
}

// PageResult describes one written (or skipped) route.
type PageResult struct {
	Route   string
	Path    string
	Bytes   int
	Hash    string
	Changed bool
	Written bool
}

// Result summarises a build.
type Result struct {
	Pages    []PageResult
	Skipped  int
	Pruned   []string
	Findings []lint.Finding
	Assets   int
	Duration time.Duration
}

// Builder renders the renderer's site into OutDir.
type Builder struct {
	renderer *page.Renderer
	manifest *manifest.Store
	logger   *zap.Logger
	opts     Options
	now      func() time.Time
}

// New constructs a Builder. The manifest is optional; without it every page
// counts as changed and incremental builds write everything.
func New(r *page.Renderer, m *manifest.Store, logger *zap.Logger, opts Options) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		opts.OutDir = "dist"
	}
	return &Builder{renderer: r, manifest: m, logger: logger, opts: opts, now: time.Now}
}

// Build renders every route concurrently with at most Workers in flight,
// then writes the not-found page, sitemap.xml and robots.txt. The first
// failure cancels outstanding renders.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	start := b.now()
	site := b.renderer.Site()
	if site == nil {
		return Result{}, errors.New("build: renderer has no site")
	}
	routes := site.Routes()
	if err := os.MkdirAll(b.opts.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("build: create %s: %w", b.opts.OutDir, err)
	}

	results := make([]PageResult, len(routes))
	var (
		mu       sync.Mutex
		findings []lint.Finding
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.opts.Workers)
	for i, route := range routes {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			res, found, err := b.buildPage(egCtx, route)
			if err != nil {
				return err
			}
			results[i] = res
			if len(found) > 0 {
				mu.Lock()
				findings = append(findings, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("build: %w", err)
	}

	out := Result{Pages: results, Findings: sortFindings(findings)}
	for _, r := range results {
		if !r.Written {
			out.Skipped++
		}
	}

	if b.manifest != nil {
		pruned, err := b.manifest.Prune(routes)
		if err != nil {
			return Result{}, err
		}
		out.Pruned = pruned
	}
	if err := b.writeExtras(routes); err != nil {
		return Result{}, err
	}
	n, err := copyAssets(b.opts.AssetsDir, filepath.Join(b.opts.OutDir, "assets"))
	if err != nil {
		return Result{}, err
	}
	out.Assets = n
	out.Duration = b.now().Sub(start)

	b.logger.Info("build complete",
		zap.Int("pages", len(results)),
		zap.Int("skipped", out.Skipped),
		zap.Int("findings", len(out.Findings)),
		zap.Int("assets", out.Assets),
		zap.Duration("duration", out.Duration),
	)
	return out, nil
}

func (b *Builder) buildPage(ctx context.Context, route string) (res PageResult, findings []lint.Finding, err error) {
	ctx, span := observability.StartPageSpan(ctx, "build.page", route)
	defer func() { observability.EndSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return PageResult{}, nil, err
	}
	d, err := b.renderer.Site().Page(route)
	if err != nil {
		return PageResult{}, nil, fmt.Errorf("build: %s: %w", route, err)
	}
	html, err := b.renderer.RenderBytes(d)
	if err != nil {
		return PageResult{}, nil, fmt.Errorf("build: %w", err)
	}
	sum := sha256.Sum256(html)
	res = PageResult{
		Route:   route,
		Path:    OutputPath(b.opts.OutDir, route),
		Bytes:   len(html),
		Hash:    hex.EncodeToString(sum[:]),
		Changed: true,
	}
	if b.opts.Audit {
		findings = lint.Audit(html, route)
	}

	if b.manifest != nil {
		prev, found, err := b.manifest.Get(route)
		if err != nil {
			return PageResult{}, nil, fmt.Errorf("build: %w", err)
		}
		res.Changed = !found || prev.Hash != res.Hash
	}
	if b.opts.Incremental && !res.Changed && fileExists(res.Path) {
		b.logger.Debug("page unchanged", zap.String("route", route))
		return res, findings, b.record(res)
	}
	if err := writeFile(res.Path, html); err != nil {
		return PageResult{}, nil, fmt.Errorf("build: %s: %w", route, err)
	}
	// The hash is recorded only once the file is on disk, so a failed write
	// is retried by the next incremental build.
	if err := b.record(res); err != nil {
		return PageResult{}, nil, err
	}
	res.Written = true
	b.logger.Debug("page written", zap.String("route", route), zap.String("path", res.Path), zap.Int("bytes", res.Bytes))
	return res, findings, nil
}

func (b *Builder) record(res PageResult) error {
	if b.manifest == nil {
		return nil
	}
	if _, _, err := b.manifest.Put(res.Route, res.Hash, res.Bytes); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return nil
}

func (b *Builder) writeExtras(routes []string) error {
	var notFound strings.Builder
	if err := b.renderer.RenderNotFound(&notFound, "/404/"); err != nil {
		return fmt.Errorf("build: render not found: %w", err)
	}
	if err := writeFile(filepath.Join(b.opts.OutDir, notFoundFile), []byte(notFound.String())); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	lastmod := make(map[string]time.Time, len(routes))
	if b.manifest != nil {
		entries, err := b.manifest.List()
		if err != nil {
			return err
		}
		for _, e := range entries {
			lastmod[e.Route] = e.UpdatedAt
		}
	}
	sitemap, err := Sitemap(b.opts.BaseURL, b.renderer.Site(), lastmod)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(b.opts.OutDir, sitemapFile), sitemap); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err := writeFile(filepath.Join(b.opts.OutDir, robotsFile), Robots(b.opts.BaseURL)); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return nil
}

// OutputPath maps a route to its index.html under outDir.
func OutputPath(outDir, route string) string {
	rel := strings.Trim(route, "/")
	if rel == "" {
		return filepath.Join(outDir, indexFile)
	}
	return filepath.Join(outDir, filepath.FromSlash(rel), indexFile)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
