// Package page is the single template every route renders through.
package page

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/components"
	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/markdown"
	"github.com/milburnr/fcs-site-sub002/internal/nav"
	"github.com/milburnr/fcs-site-sub002/internal/seo"
)

const stylesheet = "/assets/site.css"

// Options configures a Renderer. Business is injected here rather than read
// from a package global.
type Options struct {
	Business      content.Business
	Site          *content.Site
	Markdown      *markdown.Renderer
	BaseURL       string
	SiteName      string
	FormID        string
	MapsRegion    string
	DefaultImage  string
	CopyrightYear int
	FormHeight    int
	MapHeight     int
}

// Renderer turns descriptors into HTML documents. It holds no mutable state
// and is safe for concurrent use.
type Renderer struct {
	opts Options
}

// New constructs a Renderer.
func New(opts Options) *Renderer {
	if opts.Markdown == nil {
		opts.Markdown = markdown.New()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.SiteName == "" {
		opts.SiteName = opts.Business.Name
	}
	if opts.MapsRegion == "" {
		opts.MapsRegion = "FL"
	}
	return &Renderer{opts: opts}
}

// Site returns the descriptor table the renderer resolves links against.
func (r *Renderer) Site() *content.Site { return r.opts.Site }

// WithSite returns a copy of r bound to site.
func (r *Renderer) WithSite(site *content.Site) *Renderer {
	opts := r.opts
	opts.Site = site
	return &Renderer{opts: opts}
}

// Render builds the document tree for d.
func (r *Renderer) Render(d content.Descriptor) (g.Node, error) {
	sections, err := r.sections(d)
	if err != nil {
		return nil, err
	}
	canonical := seo.AbsoluteURL(r.opts.BaseURL, d.Route)
	meta := seo.MetaFor(d.Metadata, canonical, r.opts.SiteName, r.absolute(r.opts.DefaultImage))
	meta.OG.Image = r.absolute(meta.OG.Image)
	meta.Twitter.Image = meta.OG.Image
	if d.Article != nil {
		meta.OG.Type = "article"
	}

	crumbs := d.Breadcrumbs
	if len(crumbs) == 0 {
		crumbs = nav.Breadcrumbs(d.Route, r.opts.Site)
	}

	body := []g.Node{
		components.Header(r.opts.Business, nav.Build(d.Route)),
		h.Main(
			h.ID("main"),
			g.If(len(crumbs) > 1, components.Breadcrumb(crumbs, r.opts.BaseURL)),
			components.Hero(d.Hero, meta.Title, r.opts.Business),
			components.TrustBadges(d.Hero.Badges),
			g.Group(sections),
			components.FAQ(d.FAQ),
			g.Group(r.linkGroups(d)),
			r.mapEmbed(d),
			components.CTA(d.CTA, r.opts.FormID, r.opts.FormHeight, r.opts.Business),
		),
		components.Footer(r.opts.Business, r.opts.CopyrightYear),
	}
	return r.document(meta, r.structuredData(d, canonical), body), nil
}

// RenderBytes renders d into a byte slice. The same descriptor always
// produces the same bytes.
func (r *Renderer) RenderBytes(d content.Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo renders d into w.
func (r *Renderer) RenderTo(w io.Writer, d content.Descriptor) error {
	node, err := r.Render(d)
	if err != nil {
		return err
	}
	if err := node.Render(w); err != nil {
		return fmt.Errorf("page: %s: write: %w", d.Route, err)
	}
	return nil
}

// RenderNotFound writes the not-found document for route.
func (r *Renderer) RenderNotFound(w io.Writer, route string) error {
	meta := seo.Meta{
		Title:       "Page Not Found | " + r.opts.SiteName,
		Description: "The page you requested could not be found.",
		Robots:      "noindex, follow",
	}
	body := []g.Node{
		components.Header(r.opts.Business, nav.Build(route)),
		h.Main(
			h.ID("main"),
			h.Section(
				h.Class("hero"),
				h.H1(g.Text("Page Not Found")),
				h.P(g.Text("We could not find "), h.Code(g.Text(route)), g.Text(".")),
				h.P(h.A(h.Href("/"), g.Text("Return home")), g.Text(" or call "), components.PhoneLink(r.opts.Business, "", "")),
			),
		),
		components.Footer(r.opts.Business, r.opts.CopyrightYear),
	}
	return r.document(meta, nil, body).Render(w)
}

func (r *Renderer) document(meta seo.Meta, schema []map[string]any, body []g.Node) g.Node {
	return h.Doctype(h.HTML(
		h.Lang("en"),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			g.El("title", g.Text(meta.Title)),
			g.If(meta.Description != "", h.Meta(h.Name("description"), h.Content(meta.Description))),
			g.If(len(meta.Keywords) > 0, h.Meta(h.Name("keywords"), h.Content(strings.Join(meta.Keywords, ", ")))),
			g.If(meta.Robots != "", h.Meta(h.Name("robots"), h.Content(meta.Robots))),
			g.If(meta.Canonical != "", h.Link(h.Rel("canonical"), h.Href(meta.Canonical))),
			g.If(meta.Canonical != "", g.Group(openGraph(meta))),
			h.Link(h.Rel("stylesheet"), h.Href(stylesheet)),
			components.Schema(schema...),
		),
		h.Body(body...),
	))
}

func openGraph(meta seo.Meta) []g.Node {
	property := func(k, v string) g.Node {
		if v == "" {
			return nil
		}
		return h.Meta(g.Attr("property", k), h.Content(v))
	}
	name := func(k, v string) g.Node {
		if v == "" {
			return nil
		}
		return h.Meta(h.Name(k), h.Content(v))
	}
	return []g.Node{
		property("og:type", meta.OG.Type),
		property("og:title", meta.OG.Title),
		property("og:description", meta.OG.Description),
		property("og:url", meta.OG.URL),
		property("og:site_name", meta.OG.SiteName),
		property("og:image", meta.OG.Image),
		name("twitter:card", meta.Twitter.Card),
		name("twitter:image", meta.Twitter.Image),
	}
}

// structuredData derives the head JSON-LD blocks. FAQ and breadcrumb blocks
// are emitted by their components next to the visible markup.
func (r *Renderer) structuredData(d content.Descriptor, canonical string) []map[string]any {
	b := r.opts.Business
	city, hasCity := r.opts.Site.City(d.City)
	cityName := ""
	if hasCity {
		cityName = city.Name
	}
	blocks := []map[string]any{seo.LocalBusiness(b, r.opts.BaseURL, cityName)}
	if d.Kind == content.KindHome {
		blocks = append(blocks, seo.WebSite(r.opts.SiteName, seo.AbsoluteURL(r.opts.BaseURL, "/")))
	}
	if svc, ok := r.opts.Site.Service(d.Service); ok {
		areas := b.AreaServed
		if hasCity {
			areas = []string{cityName}
		}
		name := svc.Name
		if hasCity {
			name = svc.Name + " in " + cityName
		}
		blocks = append(blocks, seo.Service(b, name, d.Metadata.Description, canonical, areas))
	}
	if a := d.Article; a != nil {
		headline := a.Headline
		if headline == "" {
			headline = d.Metadata.Title
		}
		image := r.absolute(a.Image)
		if image == "" {
			image = r.absolute(d.Hero.Image)
		}
		publisher := seo.Organization(b.Name, r.absolute(b.URL), r.absolute(b.Logo))
		delete(publisher, "@context")
		blocks = append(blocks, seo.Article(headline, canonical, image, a.Author, a.DatePublished, a.DateModified, publisher))
	}
	return blocks
}

func (r *Renderer) sections(d content.Descriptor) ([]g.Node, error) {
	nodes := make([]g.Node, 0, len(d.Sections))
	for _, s := range d.Sections {
		switch s.Kind {
		case content.SectionFeatures:
			nodes = append(nodes, components.Features(s.ID, s.Heading, s.Features))
		case content.SectionSteps:
			nodes = append(nodes, components.Steps(s.ID, s.Heading, s.Steps))
		case content.SectionTable:
			nodes = append(nodes, components.Table(s.ID, s.Heading, s.Table))
		case content.SectionLinks:
			nodes = append(nodes, components.InternalLinks(s.Heading, s.Links))
		case content.SectionCallout, content.SectionProse, "":
			html, err := r.opts.Markdown.Render(s.Body)
			if err != nil {
				return nil, fmt.Errorf("page: %s: section %s: %w", d.Route, s.ID, err)
			}
			if html == "" && s.Heading == "" {
				continue
			}
			if s.Kind == content.SectionCallout {
				nodes = append(nodes, components.Callout(s.ID, s.Heading, html))
			} else {
				nodes = append(nodes, components.Prose(s.ID, s.Heading, html))
			}
		}
	}
	return nodes, nil
}

func (r *Renderer) linkGroups(d content.Descriptor) []g.Node {
	nodes := make([]g.Node, 0, len(d.Links))
	for _, lg := range d.Links {
		links := r.opts.Site.ResolveLinks(lg, d)
		if len(links) == 0 {
			continue
		}
		switch {
		case lg.Title != "":
			nodes = append(nodes, components.InternalLinks(lg.Title, links))
		case lg.Kind == content.LinksRelatedServices:
			city, _ := r.opts.Site.City(d.City)
			nodes = append(nodes, components.RelatedServices(city.Name, links))
		case lg.Kind == content.LinksNearbyLocations:
			svc, _ := r.opts.Site.Service(d.Service)
			nodes = append(nodes, components.NearbyLocations(svc.Name, links))
		default:
			nodes = append(nodes, components.InternalLinks("", links))
		}
	}
	return nodes
}

func (r *Renderer) mapEmbed(d content.Descriptor) g.Node {
	if !d.Map {
		return nil
	}
	city, ok := r.opts.Site.City(d.City)
	if !ok {
		return nil
	}
	return components.GoogleMap(city.Name, r.opts.MapsRegion, r.opts.MapHeight)
}

func (r *Renderer) absolute(href string) string {
	if strings.TrimSpace(href) == "" {
		return ""
	}
	return seo.AbsoluteURL(r.opts.BaseURL, href)
}
