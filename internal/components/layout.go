package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/nav"
)

// Header renders the site banner with primary navigation and phone number.
func Header(b content.Business, items []nav.RenderedItem) g.Node {
	return h.Header(
		h.Class("site-header"),
		h.A(h.Href("/"), h.Class("brand"),
			g.If(b.Logo != "", h.Img(h.Src(b.Logo), h.Alt(b.Name), g.Attr("width", "160"), g.Attr("height", "48"))),
			g.If(b.Logo == "", g.Text(b.Name)),
		),
		h.Nav(h.Aria("label", "Main"), h.Ul(g.Map(items, func(it nav.RenderedItem) g.Node {
			return h.Li(h.A(
				h.Href(it.Href),
				g.If(it.Active, h.Aria("current", "page")),
				g.Text(it.Label),
			))
		}))),
		PhoneLink(b, "", "header-phone"),
	)
}

// Footer renders contact details and the copyright line. The year is passed
// in so output never depends on the clock.
func Footer(b content.Business, year int) g.Node {
	addr := b.Address
	return h.Footer(
		h.Class("site-footer"),
		g.El("address",
			h.Strong(g.Text(b.DisplayName())),
			g.If(addr.Street != "", g.Group([]g.Node{h.Br(), g.Text(addr.Street)})),
			g.If(addr.City != "", g.Group([]g.Node{h.Br(), g.Text(addr.City + ", " + addr.Region + " " + addr.PostalCode)})),
			g.If(b.Phone != "", g.Group([]g.Node{h.Br(), PhoneLink(b, "", "")})),
			g.If(b.Email != "", g.Group([]g.Node{h.Br(), h.A(h.Href("mailto:"+b.Email), g.Text(b.Email))})),
		),
		g.If(b.License != "", h.P(h.Class("license"), g.Text("License "+b.License))),
		h.P(h.Class("copyright"), g.Text("© "+strconv.Itoa(year)+" "+b.DisplayName()+". All rights reserved.")),
	)
}
