package content

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
cities:
  - slug: sarasota
    name: Sarasota
    county: Sarasota
    nearby: [tampa, ruskin]
  - slug: tampa
    name: Tampa
    county: Hillsborough
    nearby: [ruskin]
  - slug: ruskin
    name: Ruskin
    county: Hillsborough
    nearby: []
services:
  - slug: commercial-construction
    name: Commercial Construction
    summary: Ground-up builds and tenant improvements.
  - slug: condo-remediation
    name: Condo Remediation
    summary: Structural and water-intrusion repairs.
`

func testFS(pages map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{"site.yaml": {Data: []byte(testCatalog)}}
	for name, body := range pages {
		fsys["pages/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadFSReadsYAMLAndMarkdown(t *testing.T) {
	t.Parallel()

	site, err := LoadFS(testFS(map[string]string{
		"b-sarasota.yaml": `
route: commercial-construction-sarasota
kind: service-location
city: sarasota
service: commercial-construction
metadata:
  title: Commercial Construction Sarasota
  description: Build with us.
sections:
  - heading: Why us
    body: We build.
`,
		"a-guide.md": `---
route: /guides/permits/
kind: topic
metadata:
  title: Permit guide
  description: Permits explained.
---

# Permits

Body text.
`,
	}))
	require.NoError(t, err)
	require.Equal(t, []string{"/commercial-construction-sarasota/", "/guides/permits/"}, site.Routes())

	d, err := site.Page("/commercial-construction-sarasota")
	require.NoError(t, err)
	assert.Equal(t, "pages/b-sarasota.yaml", d.Source)
	require.Len(t, d.Sections, 1)
	assert.Equal(t, SectionProse, d.Sections[0].Kind)
	assert.Equal(t, "section-1", d.Sections[0].ID)

	guide, err := site.Page("/guides/permits/")
	require.NoError(t, err)
	require.Len(t, guide.Sections, 1)
	assert.Equal(t, "intro", guide.Sections[0].ID)
	assert.Contains(t, guide.Sections[0].Body, "Body text.")
}

func TestLoadFSTrimsBlockScalarFAQAndCrumbs(t *testing.T) {
	t.Parallel()

	site, err := LoadFS(testFS(map[string]string{
		"a.yaml": `
route: /a/
metadata:
  title: A
  description: A page.
faq:
  entries:
    - question: |
        Same day?
      answer: |
        Yes, the same day.
breadcrumbs:
  - name: Home
    href: /
  - name: "  A  "
    href: " /a/ "
`,
	}))
	require.NoError(t, err)

	d, err := site.Page("/a/")
	require.NoError(t, err)
	require.Len(t, d.FAQ.Entries, 1)
	assert.Equal(t, FAQEntry{Question: "Same day?", Answer: "Yes, the same day."}, d.FAQ.Entries[0])
	assert.Equal(t, BreadcrumbItem{Name: "A", Href: "/a/"}, d.Breadcrumbs[1])
}

func TestNewSiteDoesNotMutateCallerFAQ(t *testing.T) {
	t.Parallel()

	entries := []FAQEntry{{Question: " Q? ", Answer: " A. "}}
	_, err := NewSite(nil, nil, []Descriptor{{Route: "/q/", FAQ: FAQ{Entries: entries}}})
	require.NoError(t, err)
	assert.Equal(t, " Q? ", entries[0].Question)
}

func TestLoadFSRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := LoadFS(testFS(map[string]string{
		"typo.yaml": "route: /x/\nmetdata:\n  title: oops\n",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo.yaml")
}

func TestNewSiteCollectsValidationErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFS(testFS(map[string]string{
		"a.yaml": "route: /dup/\n",
		"b.yaml": "route: /dup/\n",
		"c.yaml": "route: /c/\ncity: miami\n",
		"d.yaml": "route: /d/\nsections:\n  - kind: carousel\n",
		"e.yaml": "route: /e/\nsections:\n  - kind: table\n    table:\n      header: [a, b]\n      rows: [['x']]\n",
		"f.yaml": "kind: topic\n",
	}))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	msg := err.Error()
	assert.Contains(t, msg, "duplicates pages/a.yaml")
	assert.Contains(t, msg, `"miami" is not in the city catalog`)
	assert.Contains(t, msg, `kind "carousel" is unknown`)
	assert.Contains(t, msg, "row 1 has 1 cells, header has 2")
	assert.Contains(t, msg, "route is required")
}

func TestNormalizeRoute(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                         "",
		"/":                        "/",
		"commercial":               "/commercial/",
		"/services":                "/services/",
		"/services//sarasota/../x": "/services/x/",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeRoute(in), "input %q", in)
	}
}

func lookupSite(t *testing.T) *Site {
	t.Helper()
	page := func(route, city, service string) Descriptor {
		return Descriptor{Route: route, Kind: KindServiceLocation, City: city, Service: service}
	}
	var cat catalog
	require.NoError(t, decodeStrict([]byte(testCatalog), &cat))
	site, err := NewSite(cat.Cities, cat.Services, []Descriptor{
		page("/commercial-construction-sarasota/", "sarasota", "commercial-construction"),
		page("/condo-remediation-sarasota/", "sarasota", "condo-remediation"),
		page("/commercial-construction-tampa/", "tampa", "commercial-construction"),
		page("/condo-remediation-ruskin/", "ruskin", "condo-remediation"),
	})
	require.NoError(t, err)
	return site
}

func TestRelatedServicesExcludesCurrentService(t *testing.T) {
	t.Parallel()

	site := lookupSite(t)
	links := site.RelatedServices("sarasota", "commercial-construction")
	require.Len(t, links, 1)
	assert.Equal(t, "/condo-remediation-sarasota/", links[0].Href)
	assert.Equal(t, "Condo Remediation in Sarasota", links[0].Title)

	assert.Empty(t, site.RelatedServices("miami", ""))
}

func TestNearbyLocationsFollowsCatalogOrder(t *testing.T) {
	t.Parallel()

	site := lookupSite(t)

	links := site.NearbyLocations("condo-remediation", "sarasota")
	require.Len(t, links, 1)
	assert.Equal(t, "/condo-remediation-ruskin/", links[0].Href)
	assert.Equal(t, "Condo Remediation for Ruskin and Hillsborough County", links[0].Description)

	// Ruskin has no nearby cities, so every other served city is listed.
	links = site.NearbyLocations("commercial-construction", "ruskin")
	require.Len(t, links, 2)
	assert.Equal(t, "/commercial-construction-sarasota/", links[0].Href)
	assert.Equal(t, "/commercial-construction-tampa/", links[1].Href)
}

func TestResolveLinksAppliesLimit(t *testing.T) {
	t.Parallel()

	site := lookupSite(t)
	d, err := site.Page("/commercial-construction-tampa/")
	require.NoError(t, err)

	links := site.ResolveLinks(LinkGroup{Kind: LinksNearbyLocations, Limit: 1}, d)
	require.Len(t, links, 1)

	static := site.ResolveLinks(LinkGroup{Kind: LinksList, Links: []Link{{Title: "Contact", Href: "/contact/"}}}, d)
	require.Equal(t, "/contact/", static[0].Href)
}

func TestBusinessTelHref(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tel:+19415550100", Business{Phone: "(941) 555-0100", PhoneRaw: "+19415550100"}.TelHref())
	assert.Equal(t, "tel:9415550100", Business{Phone: "(941) 555-0100"}.TelHref())
	assert.Equal(t, "tel:+19415550100", Business{Phone: "+1 941-555-0100"}.TelHref())
	assert.Empty(t, Business{}.TelHref())
}
