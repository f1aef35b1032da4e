package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milburnr/fcs-site-sub002/internal/content"
)

func site(t *testing.T, pages ...content.Descriptor) *content.Site {
	t.Helper()
	s, err := content.NewSite(nil, nil, pages)
	require.NoError(t, err)
	return s
}

func page(route string) content.Descriptor {
	return content.Descriptor{
		Route:    route,
		Metadata: content.Metadata{Title: "Title for " + route, Description: "Description for " + route},
	}
}

func rules(fs []Finding) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Rule)
	}
	return out
}

func TestCheckCleanSite(t *testing.T) {
	t.Parallel()

	home := page("/")
	contact := page("/contact/")
	contact.Breadcrumbs = []content.BreadcrumbItem{{Name: "Home", Href: "/"}, {Name: "Contact", Href: "/contact/"}}
	contact.Sections = []content.Section{{ID: "intro", Body: "Back to [home](/) or see [the logo](/assets/logo.svg) and [FBC](https://floridabuilding.org)."}}

	rep := Check(site(t, home, contact), Options{})
	assert.Empty(t, rep.Findings)
	assert.True(t, rep.OK())
}

func TestCheckMetadataRules(t *testing.T) {
	t.Parallel()

	empty := page("/a/")
	empty.Metadata = content.Metadata{}
	long := page("/b/")
	long.Metadata.Title = strings.Repeat("t", 61)
	long.Metadata.Description = strings.Repeat("d", 161)

	rep := Check(site(t, empty, long), Options{})
	assert.Equal(t, []string{RuleTitleRequired, RuleDescriptionRequired}, rules(rep.Errors()))
	assert.Equal(t, []string{RuleTitleLength, RuleDescriptionLength}, rules(rep.Warnings()))
	assert.False(t, rep.OK())
}

func TestCheckBreadcrumbAndLinks(t *testing.T) {
	t.Parallel()

	p := page("/commercial-construction-sarasota/")
	p.Breadcrumbs = []content.BreadcrumbItem{
		{Name: "Services", Href: "/services/"},
		{Name: "Tampa", Href: "/commercial-construction-tampa/"},
	}
	p.Links = []content.LinkGroup{{Title: "More", Links: []content.Link{{Title: "Gone", Href: "/gone/#faq"}}}}
	p.Sections = []content.Section{{ID: "body", Features: []content.Feature{{Title: "x", Href: "/contact"}}}}

	rep := Check(site(t, p, page("/contact/")), Options{})
	got := rules(rep.Findings)
	assert.Contains(t, got, RuleBreadcrumbRoot)
	assert.Contains(t, got, RuleBreadcrumbLeaf)

	var broken []string
	for _, f := range rep.Findings {
		if f.Rule == RuleLinkIntegrity {
			broken = append(broken, f.Message)
		}
	}
	require.Len(t, broken, 3, "services, tampa and gone are missing")
	assert.Contains(t, broken[2], "/gone/#faq")
}

func TestCheckBreadcrumbLeafMustMatchRouteExactly(t *testing.T) {
	t.Parallel()

	p := page("/a/")
	p.Breadcrumbs = []content.BreadcrumbItem{{Name: "Home", Href: "/"}, {Name: "A", Href: "/a"}}

	rep := Check(site(t, p), Options{})
	require.Equal(t, []string{RuleBreadcrumbLeaf}, rules(rep.Errors()))
	assert.Contains(t, rep.Errors()[0].Message, `"/a"`)
}

func TestCheckFAQRules(t *testing.T) {
	t.Parallel()

	p := page("/faq/")
	p.FAQ.Entries = []content.FAQEntry{
		{Question: "Do you pull permits?", Answer: "Yes."},
		{Question: "do you  pull permits?", Answer: "Also yes."},
		{Question: "Are you insured?", Answer: " "},
	}
	rep := Check(site(t, p), Options{})
	assert.Equal(t, []string{RuleFAQEmptyAnswer}, rules(rep.Errors()))
	assert.Equal(t, []string{RuleFAQDuplicate}, rules(rep.Warnings()))
}
