// Package lint checks the descriptor table for authoring mistakes and audits
// rendered pages for drift between visible content and structured data.
package lint

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/markdown"
	"github.com/milburnr/fcs-site-sub002/internal/seo"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names.
const (
	RuleTitleRequired       = "title-required"
	RuleTitleLength         = "title-length"
	RuleDescriptionRequired = "description-required"
	RuleDescriptionLength   = "description-length"
	RuleBreadcrumbLeaf      = "breadcrumb-leaf"
	RuleBreadcrumbRoot      = "breadcrumb-root"
	RuleLinkIntegrity       = "link-integrity"
	RuleFAQDuplicate        = "faq-duplicate"
	RuleFAQEmptyAnswer      = "faq-empty-answer"
)

// Finding is one problem with one route.
type Finding struct {
	Route    string   `json:"route"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s [%s] %s", f.Severity, f.Route, f.Rule, f.Message)
}

// Report collects findings in descriptor order.
type Report struct {
	Findings []Finding
}

func (r Report) Errors() []Finding   { return r.filter(SeverityError) }
func (r Report) Warnings() []Finding { return r.filter(SeverityWarning) }

// OK reports whether the report holds no errors.
func (r Report) OK() bool { return len(r.Errors()) == 0 }

func (r Report) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Options tunes Check.
type Options struct {
	// StaticPrefixes are internal paths served outside the descriptor table.
	StaticPrefixes []string
	Markdown       *markdown.Renderer
}

// DefaultStaticPrefixes are always treated as resolvable.
var DefaultStaticPrefixes = []string{"/assets/", "/sitemap.xml", "/robots.txt"}

// Check runs every descriptor rule over site.
func Check(site *content.Site, opts Options) Report {
	if opts.Markdown == nil {
		opts.Markdown = markdown.New()
	}
	if opts.StaticPrefixes == nil {
		opts.StaticPrefixes = DefaultStaticPrefixes
	}
	var rep Report
	if site == nil {
		return rep
	}
	for _, d := range site.Pages {
		c := checker{site: site, opts: opts, d: d}
		c.metadata()
		c.breadcrumbs()
		c.links()
		c.faq()
		rep.Findings = append(rep.Findings, c.findings...)
	}
	return rep
}

type checker struct {
	site     *content.Site
	opts     Options
	d        content.Descriptor
	findings []Finding
}

func (c *checker) add(rule string, sev Severity, format string, args ...any) {
	c.findings = append(c.findings, Finding{
		Route:    c.d.Route,
		Rule:     rule,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *checker) metadata() {
	title := strings.TrimSpace(c.d.Metadata.Title)
	if title == "" {
		c.add(RuleTitleRequired, SeverityError, "metadata.title is empty")
	} else if n := utf8.RuneCountInString(title); n > seo.MaxTitleLength {
		c.add(RuleTitleLength, SeverityWarning, "title is %d characters, limit %d", n, seo.MaxTitleLength)
	}
	desc := strings.TrimSpace(c.d.Metadata.Description)
	if desc == "" {
		c.add(RuleDescriptionRequired, SeverityError, "metadata.description is empty")
	} else if n := utf8.RuneCountInString(desc); n > seo.MaxDescriptionLength {
		c.add(RuleDescriptionLength, SeverityWarning, "description is %d characters, limit %d", n, seo.MaxDescriptionLength)
	}
}

func (c *checker) breadcrumbs() {
	trail := c.d.Breadcrumbs
	if len(trail) == 0 {
		return
	}
	if first := trail[0].Href; first != "/" {
		c.add(RuleBreadcrumbRoot, SeverityWarning, "first breadcrumb is %q, want \"/\"", first)
	}
	if last := trail[len(trail)-1].Href; last != c.d.Route {
		c.add(RuleBreadcrumbLeaf, SeverityError, "last breadcrumb is %q, want %q", last, c.d.Route)
	}
}

func (c *checker) links() {
	for i, b := range c.d.Breadcrumbs {
		c.href(fmt.Sprintf("breadcrumbs[%d]", i), b.Href)
	}
	for i, g := range c.d.Links {
		for j, l := range g.Links {
			c.href(fmt.Sprintf("links[%d].links[%d]", i, j), l.Href)
		}
	}
	for _, s := range c.d.Sections {
		for j, l := range s.Links {
			c.href(fmt.Sprintf("section %s links[%d]", s.ID, j), l.Href)
		}
		for j, f := range s.Features {
			c.href(fmt.Sprintf("section %s features[%d]", s.ID, j), f.Href)
		}
		for _, href := range c.opts.Markdown.Links(s.Body) {
			c.href(fmt.Sprintf("section %s body", s.ID), href)
		}
	}
}

func (c *checker) href(where, href string) {
	target, ok := internalPath(href)
	if !ok {
		return
	}
	for _, p := range c.opts.StaticPrefixes {
		if strings.HasPrefix(target, p) {
			return
		}
	}
	if !c.site.Has(target) {
		c.add(RuleLinkIntegrity, SeverityError, "%s: %q does not resolve to a page", where, href)
	}
}

// internalPath returns the path of a site-relative href. Fragment-only,
// external and non-HTTP hrefs are not internal.
func internalPath(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return href, true
	}
	return u.Path, true
}

func (c *checker) faq() {
	seen := make(map[string]int, len(c.d.FAQ.Entries))
	for i, e := range c.d.FAQ.Entries {
		q := strings.ToLower(strings.Join(strings.Fields(e.Question), " "))
		if q == "" {
			c.add(RuleFAQEmptyAnswer, SeverityError, "faq entry %d has no question", i+1)
			continue
		}
		if strings.TrimSpace(e.Answer) == "" {
			c.add(RuleFAQEmptyAnswer, SeverityError, "faq entry %d %q has no answer", i+1, e.Question)
		}
		if prev, ok := seen[q]; ok {
			c.add(RuleFAQDuplicate, SeverityWarning, "faq entry %d repeats entry %d %q", i+1, prev+1, e.Question)
			continue
		}
		seen[q] = i
	}
}
