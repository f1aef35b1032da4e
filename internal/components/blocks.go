package components

import (
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

// Hero renders the page banner. It holds the only h1 on the page; when the
// hero has no heading the page title is used.
func Hero(hero content.Hero, title string, b content.Business) g.Node {
	heading := strings.TrimSpace(hero.Heading)
	if heading == "" {
		heading = title
	}
	return h.Section(
		h.Class("hero"),
		g.If(hero.Image != "", h.Img(
			h.Class("hero-image"),
			h.Src(hero.Image),
			h.Alt(hero.ImageAlt),
			g.Attr("fetchpriority", "high"),
		)),
		h.Div(
			h.Class("hero-body"),
			g.If(hero.Eyebrow != "", h.P(h.Class("eyebrow"), g.Text(hero.Eyebrow))),
			h.H1(g.Text(heading)),
			g.If(hero.Subheading != "", h.P(h.Class("lead"), g.Text(hero.Subheading))),
			h.Div(
				h.Class("hero-actions"),
				PhoneLink(b, "Call "+b.Phone, "button button-primary"),
				h.A(h.Href("#contact"), h.Class("button"), g.Text("Request a Quote")),
			),
		),
	)
}

// TrustBadges renders the short credential list under the hero.
func TrustBadges(badges []string) g.Node {
	if len(badges) == 0 {
		return nil
	}
	return h.Ul(h.Class("trust-badges"), g.Map(badges, func(s string) g.Node {
		return h.Li(g.Text(s))
	}))
}

// Prose wraps pre-sanitized HTML produced by the markdown renderer.
func Prose(id, heading, html string) g.Node {
	return h.Section(
		g.If(id != "", h.ID(id)),
		h.Class("prose"),
		g.If(heading != "", h.H2(g.Text(heading))),
		g.Raw(html),
	)
}

// Callout is a highlighted prose block.
func Callout(id, heading, html string) g.Node {
	return h.Aside(
		g.If(id != "", h.ID(id)),
		h.Class("callout"),
		g.If(heading != "", h.H2(g.Text(heading))),
		g.Raw(html),
	)
}

// Features renders service feature cards.
func Features(id, heading string, features []content.Feature) g.Node {
	if len(features) == 0 {
		return nil
	}
	return h.Section(
		g.If(id != "", h.ID(id)),
		h.Class("features"),
		g.If(heading != "", h.H2(g.Text(heading))),
		h.Div(h.Class("feature-grid"), g.Map(features, func(f content.Feature) g.Node {
			title := g.Text(f.Title)
			if f.Href != "" {
				title = h.A(h.Href(f.Href), g.Text(f.Title))
			}
			return h.Article(
				h.Class("feature"),
				g.If(f.Icon != "", h.Span(h.Class("icon icon-"+f.Icon), h.Aria("hidden", "true"))),
				h.H3(title),
				g.If(f.Description != "", h.P(g.Text(f.Description))),
			)
		})),
	)
}

// Steps renders the process as an ordered list; a step's number is its position.
func Steps(id, heading string, steps []content.Step) g.Node {
	if len(steps) == 0 {
		return nil
	}
	items := make([]g.Node, 0, len(steps))
	for i, s := range steps {
		items = append(items, h.Li(
			h.Class("step"),
			h.Span(h.Class("step-number"), g.Text(strconv.Itoa(i+1))),
			h.H3(g.Text(s.Title)),
			g.If(s.Description != "", h.P(g.Text(s.Description))),
		))
	}
	return h.Section(
		g.If(id != "", h.ID(id)),
		h.Class("steps"),
		g.If(heading != "", h.H2(g.Text(heading))),
		h.Ol(g.Group(items)),
	)
}

// Table renders a static comparison table.
func Table(id, heading string, t *content.Table) g.Node {
	if t == nil || len(t.Header) == 0 {
		return nil
	}
	return h.Section(
		g.If(id != "", h.ID(id)),
		h.Class("comparison"),
		g.If(heading != "", h.H2(g.Text(heading))),
		h.Div(
			h.Class("table-wrap"),
			h.Table(
				g.If(t.Caption != "", g.El("caption", g.Text(t.Caption))),
				h.THead(h.Tr(g.Map(t.Header, func(c string) g.Node {
					return h.Th(g.Attr("scope", "col"), g.Text(c))
				}))),
				h.TBody(g.Map(t.Rows, func(row []string) g.Node {
					return h.Tr(g.Map(row, func(c string) g.Node { return h.Td(g.Text(c)) }))
				})),
			),
		),
	)
}

// CTA is the closing call to action with the lead form and phone number.
func CTA(cta content.CTA, formID string, formHeight int, b content.Business) g.Node {
	heading := strings.TrimSpace(cta.Heading)
	if heading == "" {
		heading = "Get a Free Estimate"
	}
	if cta.FormHeight > 0 {
		formHeight = cta.FormHeight
	}
	label := strings.TrimSpace(cta.ButtonLabel)
	if label == "" {
		label = "Call " + b.Phone
	}
	return h.Section(
		h.ID("contact"),
		h.Class("cta"),
		h.H2(g.Text(heading)),
		g.If(cta.Body != "", h.P(g.Text(cta.Body))),
		h.P(h.Class("cta-phone"), PhoneLink(b, label, "button button-primary")),
		HighLevelForm(formID, formHeight, b),
	)
}
