package seo

import (
	"strings"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

// Conventional search-engine length guidance, in characters.
const (
	MaxTitleLength       = 60
	MaxDescriptionLength = 160
)

// OpenGraph holds the og:* properties shared when a page is linked socially.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// Twitter holds the twitter:* card properties.
type Twitter struct {
	Card  string
	Image string
}

// Meta is everything a page needs in its head besides structured data.
type Meta struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
}

// MetaFor builds head metadata from a page's metadata record.
func MetaFor(m content.Metadata, canonical, siteName, defaultImage string) Meta {
	image := firstNonEmpty(m.OGImage, defaultImage)
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       strings.TrimSpace(m.Title),
		Description: strings.TrimSpace(m.Description),
		Keywords:    m.Keywords,
		Canonical:   canonical,
		Robots:      firstNonEmpty(m.Robots, "index, follow"),
		OG: OpenGraph{
			Title:       strings.TrimSpace(m.Title),
			Description: strings.TrimSpace(m.Description),
			Image:       image,
			Type:        "website",
			URL:         canonical,
			SiteName:    siteName,
		},
		Twitter: Twitter{
			Card:  card,
			Image: image,
		},
	}
}
