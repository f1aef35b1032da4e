package build

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/lint"
	"github.com/milburnr/fcs-site-sub002/internal/seo"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders sitemap.xml for every route in site, in route order.
// lastmod supplies per-route modification times; routes without one omit it.
func Sitemap(baseURL string, site *content.Site, lastmod map[string]time.Time) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS}
	for _, route := range site.Routes() {
		d, err := site.Page(route)
		if err != nil {
			continue
		}
		u := sitemapURL{
			Loc:        seo.AbsoluteURL(baseURL, route),
			ChangeFreq: "monthly",
			Priority:   priority(d.Kind),
		}
		if t, ok := lastmod[route]; ok && !t.IsZero() {
			u.LastMod = t.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("build: encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func priority(kind string) string {
	switch kind {
	case content.KindHome:
		return "1.0"
	case content.KindServiceLocation:
		return "0.9"
	case content.KindService, content.KindLocation:
		return "0.8"
	default:
		return "0.6"
	}
}

// Robots renders robots.txt pointing crawlers at the sitemap.
func Robots(baseURL string) []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + seo.AbsoluteURL(baseURL, "/sitemap.xml") + "\n")
}

func sortFindings(fs []lint.Finding) []lint.Finding {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Route != fs[j].Route {
			return fs[i].Route < fs[j].Route
		}
		return fs[i].Rule < fs[j].Rule
	})
	return fs
}
