package components

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/seo"
)

const defaultFAQTitle = "Frequently Asked Questions"

// FAQ renders the accordion and the FAQPage block from the same entries, so
// the visible questions and the structured data cannot drift apart.
func FAQ(faq content.FAQ) g.Node {
	if len(faq.Entries) == 0 {
		return nil
	}
	title := strings.TrimSpace(faq.Title)
	if title == "" {
		title = defaultFAQTitle
	}
	items := make([]g.Node, 0, len(faq.Entries))
	for i, e := range faq.Entries {
		items = append(items, g.El("details",
			h.Class("faq-item"),
			h.Data("faq-item", ""),
			g.If(i == 0, g.Attr("open")),
			g.El("summary", h.Class("faq-question"), g.Text(e.Question)),
			h.P(h.Class("faq-answer"), g.Text(e.Answer)),
		))
	}
	return h.Section(
		h.ID("faq"),
		h.Class("faq"),
		h.H2(g.Text(title)),
		g.If(strings.TrimSpace(faq.Description) != "", h.P(h.Class("faq-intro"), g.Text(faq.Description))),
		h.Div(h.Class("faq-list"), g.Group(items)),
		Schema(seo.FAQPage(faq.Entries)),
	)
}
