// Package components holds the shared leaf renderers composed by the page
// template. Every component is a pure function of its arguments.
package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/milburnr/fcs-site-sub002/internal/seo"
)

// Schema emits one JSON-LD script element per non-empty block.
func Schema(blocks ...map[string]any) g.Node {
	nodes := make([]g.Node, 0, len(blocks))
	for _, b := range blocks {
		if len(b) == 0 {
			continue
		}
		payload := seo.JSON(b)
		if payload == "" {
			continue
		}
		nodes = append(nodes, h.Script(h.Type("application/ld+json"), g.Raw(payload)))
	}
	return g.Group(nodes)
}
