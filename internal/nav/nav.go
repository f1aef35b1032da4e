// Package nav builds the primary navigation and path-derived breadcrumbs.
package nav

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/services/"
	Label string
}

// RenderedItem is a view model for the header.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", Label: "Home"},
	{Path: "/services/", Label: "Services"},
	{Path: "/locations/", Label: "Locations"},
	{Path: "/contact/", Label: "Contact"},
}

// Labeler resolves a display label for a known route.
type Labeler interface {
	Label(route string) (string, bool)
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	currentPath = content.NormalizeRoute(currentPath)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath)
}

// Breadcrumbs builds a trail from home to route. Each prefix of the route
// becomes one crumb, labelled from the site index when the prefix is a known
// page and from a prettified segment otherwise.
func Breadcrumbs(route string, labels Labeler) []content.BreadcrumbItem {
	route = content.NormalizeRoute(route)
	crumbs := []content.BreadcrumbItem{{Name: label(labels, "/", "Home"), Href: "/"}}
	if route == "/" {
		return crumbs
	}
	clean := strings.Trim(path.Clean(route), "/")
	href := "/"
	for _, seg := range strings.Split(clean, "/") {
		if seg == "" {
			continue
		}
		href += seg + "/"
		crumbs = append(crumbs, content.BreadcrumbItem{
			Name: label(labels, href, titleFromSegment(seg)),
			Href: href,
		})
	}
	return crumbs
}

func label(labels Labeler, route, fallback string) string {
	if labels == nil {
		return fallback
	}
	if l, ok := labels.Label(route); ok && strings.TrimSpace(l) != "" {
		return l
	}
	return fallback
}

// A Caser carries state, so each call builds its own.
func titleFromSegment(seg string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return cases.Title(language.AmericanEnglish).String(s)
}
