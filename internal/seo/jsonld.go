package seo

import (
	"encoding/json"
	"strings"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
// encoding/json escapes <, > and &, so the result is safe inside a script element.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// LocalBusiness describes the contractor. When city is set it is listed first
// in areaServed so that location pages advertise the city they target.
func LocalBusiness(b content.Business, baseURL, city string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "GeneralContractor",
		"name":     b.Name,
		"url":      firstNonEmpty(b.URL, baseURL),
	}
	if b.Phone != "" {
		m["telephone"] = firstNonEmpty(b.PhoneRaw, b.Phone)
	}
	if b.Email != "" {
		m["email"] = b.Email
	}
	if b.Logo != "" {
		m["logo"] = AbsoluteURL(baseURL, b.Logo)
	}
	if b.Image != "" {
		m["image"] = AbsoluteURL(baseURL, b.Image)
	}
	if b.PriceRange != "" {
		m["priceRange"] = b.PriceRange
	}
	if b.Address.Street != "" || b.Address.City != "" {
		m["address"] = map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   b.Address.Street,
			"addressLocality": b.Address.City,
			"addressRegion":   b.Address.Region,
			"postalCode":      b.Address.PostalCode,
			"addressCountry":  firstNonEmpty(b.Address.Country, "US"),
		}
	}
	if b.Geo.Lat != 0 || b.Geo.Lng != 0 {
		m["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  b.Geo.Lat,
			"longitude": b.Geo.Lng,
		}
	}
	if len(b.OpeningHours) > 0 {
		m["openingHours"] = b.OpeningHours
	}
	if areas := areaServed(b.AreaServed, city); len(areas) > 0 {
		m["areaServed"] = areas
	}
	if len(b.SameAs) > 0 {
		m["sameAs"] = b.SameAs
	}
	return m
}

// Service describes one service offering provided by the business.
func Service(b content.Business, name, description, url string, areas []string) map[string]any {
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "Service",
		"name":        name,
		"serviceType": name,
		"provider": map[string]any{
			"@type":     "GeneralContractor",
			"name":      b.Name,
			"telephone": firstNonEmpty(b.PhoneRaw, b.Phone),
		},
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	if len(areas) > 0 {
		served := make([]map[string]any, 0, len(areas))
		for _, a := range areas {
			served = append(served, map[string]any{"@type": "City", "name": a})
		}
		m["areaServed"] = served
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList with positions starting at 1.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Breadcrumbs converts a page trail into absolute BreadcrumbList items.
func Breadcrumbs(baseURL string, trail []content.BreadcrumbItem) []BreadcrumbItem {
	out := make([]BreadcrumbItem, 0, len(trail))
	for _, c := range trail {
		out = append(out, BreadcrumbItem{Name: c.Name, Item: AbsoluteURL(baseURL, c.Href)})
	}
	return out
}

// FAQPage builds a FAQPage schema with one Question per entry, in order.
func FAQPage(entries []content.FAQEntry) map[string]any {
	questions := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		questions = append(questions, map[string]any{
			"@type": "Question",
			"name":  e.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  e.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": questions,
	}
}

// Article returns an Article schema payload.
func Article(headline, url, imageURL, authorName, datePublished, dateModified string, publisher map[string]any) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
		m["mainEntityOfPage"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": authorName}
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	if dateModified != "" {
		m["dateModified"] = dateModified
	}
	if publisher != nil {
		m["publisher"] = publisher
	}
	return m
}

// AbsoluteURL joins a site-relative href onto the base URL. Absolute and
// non-HTTP hrefs are returned unchanged.
func AbsoluteURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return strings.TrimRight(baseURL, "/") + "/"
	}
	if strings.Contains(href, "://") || strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "mailto:") {
		return href
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}

func areaServed(areas []string, city string) []string {
	out := make([]string, 0, len(areas)+1)
	if city != "" {
		out = append(out, city)
	}
	for _, a := range areas {
		if a != "" && !strings.EqualFold(a, city) {
			out = append(out, a)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
