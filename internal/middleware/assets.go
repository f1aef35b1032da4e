package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const assetCacheControl = "public, max-age=604800, stale-while-revalidate=86400"

// ETag returns a weak validator for body.
func ETag(body []byte) string {
	sum := sha256.Sum256(body)
	return weak(sum[:])
}

func weak(sum []byte) string {
	return `W/"` + hex.EncodeToString(sum[:16]) + `"`
}

// NotModified reports whether the request already holds etag.
func NotModified(r *http.Request, etag string) bool {
	inm := r.Header.Get("If-None-Match")
	return inm != "" && (inm == etag || inm == "*")
}

// AssetsWithCache serves the files under dir below prefix with long-lived
// cache headers. ETags are hashed on first request and rehashed when a file's
// modification time changes, so edited assets are picked up without a restart.
func AssetsWithCache(prefix, dir string) http.Handler {
	a := &assetTags{fsys: os.DirFS(dir), tags: map[string]assetTag{}}
	files := http.StripPrefix(prefix, http.FileServerFS(a.fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", assetCacheControl)
		name := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix), "/")
		if et := a.lookup(name); et != "" {
			w.Header().Set("ETag", et)
			if NotModified(r, et) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

type assetTag struct {
	modTime time.Time
	etag    string
}

type assetTags struct {
	fsys fs.FS
	mu   sync.Mutex
	tags map[string]assetTag
}

func (a *assetTags) lookup(name string) string {
	if name == "" || !fs.ValidPath(name) {
		return ""
	}
	info, err := fs.Stat(a.fsys, name)
	if err != nil || info.IsDir() {
		return ""
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.tags[name]; ok && t.modTime.Equal(info.ModTime()) {
		return t.etag
	}
	et, err := hashFile(a.fsys, name)
	if err != nil {
		return ""
	}
	a.tags[name] = assetTag{modTime: info.ModTime(), etag: et}
	return et
}

func hashFile(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return weak(h.Sum(nil)), nil
}
