package components

import (
	"net/url"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

const (
	mapsEmbedURL   = "https://www.google.com/maps"
	formEmbedURL   = "https://api.leadconnectorhq.com/widget/form/"
	formEmbedJS    = "https://link.msgsndr.com/js/form_embed.js"
	defaultMapSize = 450
	defaultFormSz  = 600
)

// GoogleMap embeds a map centred on "city, region".
func GoogleMap(city, region string, height int) g.Node {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil
	}
	if height <= 0 {
		height = defaultMapSize
	}
	q := city
	if r := strings.TrimSpace(region); r != "" {
		q += ", " + r
	}
	src := mapsEmbedURL + "?" + url.Values{"q": {q}, "output": {"embed"}}.Encode()
	return h.Div(
		h.Class("map-embed"),
		g.El("iframe",
			h.Src(src),
			g.Attr("title", "Map of "+q),
			g.Attr("width", "100%"),
			g.Attr("height", strconv.Itoa(height)),
			g.Attr("loading", "lazy"),
			g.Attr("referrerpolicy", "no-referrer-when-downgrade"),
			g.Attr("allowfullscreen"),
		),
	)
}

// HighLevelForm embeds the lead-capture form. Without a form ID it falls back
// to a call prompt so the page still converts.
func HighLevelForm(formID string, height int, b content.Business) g.Node {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return h.P(h.Class("form-fallback"), g.Text("Call us today: "), PhoneLink(b, "", "phone-link"))
	}
	if height <= 0 {
		height = defaultFormSz
	}
	return h.Div(
		h.Class("lead-form"),
		g.El("iframe",
			h.Src(formEmbedURL+url.PathEscape(formID)),
			h.ID("inline-"+formID),
			g.Attr("title", "Contact form"),
			g.Attr("style", "width:100%;height:"+strconv.Itoa(height)+"px;border:none;border-radius:4px"),
			g.Attr("data-form-id", formID),
			g.Attr("data-height", strconv.Itoa(height)),
			g.Attr("loading", "lazy"),
		),
		h.Script(h.Src(formEmbedJS), g.Attr("async")),
	)
}

// PhoneLink renders a tel: link. An empty label shows the display number.
func PhoneLink(b content.Business, label, class string) g.Node {
	href := b.TelHref()
	if href == "" {
		return nil
	}
	if label == "" {
		label = b.Phone
	}
	return h.A(h.Href(href), g.If(class != "", h.Class(class)), g.Text(label))
}
