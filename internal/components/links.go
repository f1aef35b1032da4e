package components

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

// InternalLinks renders a titled grid of link cards. An empty list renders nothing.
func InternalLinks(title string, links []content.Link) g.Node {
	if len(links) == 0 {
		return nil
	}
	return h.Section(
		h.Class("internal-links"),
		g.If(strings.TrimSpace(title) != "", h.H2(g.Text(title))),
		h.Ul(h.Class("link-grid"), g.Map(links, linkCard)),
	)
}

func linkCard(l content.Link) g.Node {
	return h.Li(
		h.Class("link-card"),
		h.A(
			h.Href(l.Href),
			g.If(l.Icon != "", h.Span(h.Class("icon icon-"+l.Icon), h.Aria("hidden", "true"))),
			h.Strong(g.Text(l.Title)),
		),
		g.If(l.Description != "", h.P(g.Text(l.Description))),
	)
}

// RelatedServices renders the other services offered in city.
func RelatedServices(cityName string, links []content.Link) g.Node {
	return InternalLinks(fmt.Sprintf("More Services in %s", cityName), links)
}

// NearbyLocations renders the same service in neighbouring cities.
func NearbyLocations(serviceName string, links []content.Link) g.Node {
	return InternalLinks(fmt.Sprintf("%s in Nearby Areas", serviceName), links)
}
