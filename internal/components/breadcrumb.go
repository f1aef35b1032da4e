package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/seo"
)

// Breadcrumb renders the trail with the last item marked as the current page,
// followed by the matching BreadcrumbList block.
func Breadcrumb(items []content.BreadcrumbItem, baseURL string) g.Node {
	if len(items) == 0 {
		return nil
	}
	lis := make([]g.Node, 0, len(items))
	for i, it := range items {
		if i == len(items)-1 {
			lis = append(lis, h.Li(h.Span(h.Aria("current", "page"), g.Text(it.Name))))
			continue
		}
		lis = append(lis, h.Li(h.A(h.Href(it.Href), g.Text(it.Name))))
	}
	return g.Group([]g.Node{
		h.Nav(h.Aria("label", "Breadcrumb"), h.Class("breadcrumb"), h.Ol(g.Group(lis))),
		Schema(seo.BreadcrumbList(seo.Breadcrumbs(baseURL, items))),
	})
}
