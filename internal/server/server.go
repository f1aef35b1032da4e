// Package server serves the site on demand for previews and simple hosting.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub002/internal/build"
	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/middleware"
	"github.com/milburnr/fcs-site-sub002/internal/observability"
	"github.com/milburnr/fcs-site-sub002/internal/page"
)

const (
	defaultRequestTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Options configures the HTTP server.
type Options struct {
	Addr            string
	AssetsDir       string
	BaseURL         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// Server renders pages from the current site on each request. The site can
// be swapped at runtime with Reload.
type Server struct {
	mu       sync.RWMutex
	renderer *page.Renderer

	logger  *zap.Logger
	opts    Options
	handler http.Handler
}

// New constructs a Server around renderer.
func New(renderer *page.Renderer, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	s := &Server{renderer: renderer, logger: logger, opts: opts}
	s.handler = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(chiMid.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chiMid.Recoverer)
	r.Use(chiMid.Compress(5))
	r.Use(chiMid.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	if s.opts.AssetsDir != "" {
		r.Handle("/assets/*", middleware.AssetsWithCache("/assets", s.opts.AssetsDir))
	}
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/robots.txt", s.handleRobots)
	// Pages are looked up in the current table on every request, so a reload
	// can add or remove routes without rebuilding the router.
	r.Get("/*", s.handlePage)
	r.Head("/*", s.handlePage)
	return r
}

// Reload swaps in a new site. In-flight requests finish against the old one.
func (s *Server) Reload(site *content.Site) {
	s.mu.Lock()
	s.renderer = s.renderer.WithSite(site)
	s.mu.Unlock()
	s.logger.Info("site reloaded", zap.Int("pages", len(site.Routes())))
}

func (s *Server) current() *page.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.renderer
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"pages":  len(s.current().Site().Routes()),
	})
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	body, err := build.Sitemap(s.opts.BaseURL, s.current().Site(), nil)
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(build.Robots(s.opts.BaseURL))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	renderer := s.current()
	site := renderer.Site()
	path := r.URL.Path
	route := content.NormalizeRoute(path)

	if !site.Has(route) {
		s.notFound(w, r, renderer)
		return
	}
	if path != route {
		target := route
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	ctx, span := observability.StartPageSpan(r.Context(), "serve.page", route)
	body, err := s.render(site, renderer, route)
	observability.EndSpan(span, err)
	if err != nil {
		observability.FromContext(ctx).Error("render page", zap.String("route", route), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	etag := middleware.ETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if middleware.NotModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (s *Server) render(site *content.Site, renderer *page.Renderer, route string) ([]byte, error) {
	d, err := site.Page(route)
	if err != nil {
		return nil, err
	}
	return renderer.RenderBytes(d)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, renderer *page.Renderer) {
	var buf strings.Builder
	if err := renderer.RenderNotFound(&buf, r.URL.Path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(buf.String()))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
