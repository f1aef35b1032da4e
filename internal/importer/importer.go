// Package importer converts legacy HTML pages into descriptor drafts so that
// existing copy can be moved into the content table.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

// ErrNoMatch is returned when the selector matches nothing.
var ErrNoMatch = errors.New("importer: selector matched nothing")

// Page is what could be recovered from a legacy page.
type Page struct {
	Title       string
	Description string
	Heading     string
	Markdown    string
	FAQ         []content.FAQEntry
}

// Import parses r, converts the first node matching selector to markdown and
// collects head metadata, the h1 and any FAQ entries. FAQ entries are read
// from details/summary pairs; the FAQ block is removed from the converted body.
func Import(ctx context.Context, r io.Reader, selector string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	root, err := html.Parse(r)
	if err != nil {
		return Page{}, fmt.Errorf("importer: parse html: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	p := Page{
		Title:       strings.TrimSpace(doc.Find("head title").First().Text()),
		Description: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
		Heading:     strings.TrimSpace(doc.Find("h1").First().Text()),
	}

	if strings.TrimSpace(selector) == "" {
		selector = "main"
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return Page{}, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}

	sel.Find("details").Each(func(_ int, s *goquery.Selection) {
		q := strings.TrimSpace(s.Find("summary").First().Text())
		s.Find("summary").Remove()
		a := strings.Join(strings.Fields(s.Text()), " ")
		if q != "" && a != "" {
			p.FAQ = append(p.FAQ, content.FAQEntry{Question: q, Answer: a})
		}
	})
	sel.Find("details, script, style, h1, nav, iframe, form").Remove()

	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	md, err := htmltomarkdown.ConvertNode(sel.Nodes[0])
	if err != nil {
		return Page{}, fmt.Errorf("importer: convert: %w", err)
	}
	p.Markdown = strings.TrimSpace(string(md))
	return p, nil
}

// Descriptor turns an imported page into a descriptor draft for route.
func (p Page) Descriptor(route string) content.Descriptor {
	d := content.Descriptor{
		Route: content.NormalizeRoute(route),
		Kind:  content.KindTopic,
		Metadata: content.Metadata{
			Title:       p.Title,
			Description: p.Description,
		},
		Hero: content.Hero{Heading: p.Heading},
		FAQ:  content.FAQ{Entries: p.FAQ},
	}
	if p.Markdown != "" {
		d.Sections = []content.Section{{ID: "intro", Kind: content.SectionProse, Body: p.Markdown}}
	}
	return d
}

// Fetch downloads a page for Import.
func Fetch(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("importer: create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("importer: download %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("importer: download %s: status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}
