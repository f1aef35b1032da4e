package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultContentDir = "content"
	catalogFile       = "site.yaml"
	pagesDir          = "pages"
	introSectionID    = "intro"
)

// ErrNotFound is returned when a route has no descriptor.
var ErrNotFound = errors.New("content: not found")

type catalog struct {
	Cities   []City    `yaml:"cities"`
	Services []Service `yaml:"services"`
}

// Load reads the descriptor table from a content directory on disk.
func Load(dir string) (*Site, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads site.yaml and every descriptor under pages/. Descriptors are
// .yaml files, or .md files whose YAML front matter is the descriptor and
// whose body becomes a leading prose section.
func LoadFS(fsys fs.FS) (*Site, error) {
	raw, err := fs.ReadFile(fsys, catalogFile)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", catalogFile, err)
	}
	var cat catalog
	if err := decodeStrict(raw, &cat); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", catalogFile, err)
	}

	var files []string
	err = fs.WalkDir(fsys, pagesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(d.Name())) {
		case ".yaml", ".yml", ".md":
			files = append(files, p)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("content: walk %s: %w", pagesDir, err)
	}
	sort.Strings(files)

	pages := make([]Descriptor, 0, len(files))
	for _, file := range files {
		d, err := readDescriptor(fsys, file)
		if err != nil {
			return nil, err
		}
		pages = append(pages, d)
	}
	return NewSite(cat.Cities, cat.Services, pages)
}

func readDescriptor(fsys fs.FS, file string) (Descriptor, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return Descriptor{}, fmt.Errorf("content: read %s: %w", file, err)
	}
	var d Descriptor
	if strings.EqualFold(path.Ext(file), ".md") {
		fm, body := splitFrontMatter(string(data))
		if strings.TrimSpace(fm) == "" {
			return Descriptor{}, &ValidationError{Source: file, Field: "front matter", Message: "is required"}
		}
		if err := decodeStrict([]byte(fm), &d); err != nil {
			return Descriptor{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
		if body = strings.TrimSpace(body); body != "" {
			intro := Section{ID: introSectionID, Kind: SectionProse, Body: body}
			d.Sections = append([]Section{intro}, d.Sections...)
		}
	} else if err := decodeStrict(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("content: parse %s: %w", file, err)
	}
	d.Source = file
	return d, nil
}

// decodeStrict rejects unknown keys so that typos in authored files surface
// as build errors instead of silently missing content.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

// NormalizeRoute cleans a route to its canonical form: a leading and a
// trailing slash, "/" for the home page. Empty input stays empty.
func NormalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return ""
	}
	trimmed := strings.Trim(path.Clean("/"+route), "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed + "/"
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if strings.Contains(slug, "..") || strings.ContainsRune(slug, '/') {
		return ""
	}
	return slug
}
