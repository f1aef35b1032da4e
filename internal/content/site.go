package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError describes an authoring mistake in the descriptor table.
type ValidationError struct {
	Source  string
	Route   string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	loc := e.Source
	if loc == "" {
		loc = e.Route
	}
	if loc == "" {
		return fmt.Sprintf("content: %s %s", e.Field, e.Message)
	}
	return fmt.Sprintf("content: %s: %s %s", loc, e.Field, e.Message)
}

// Site is the immutable descriptor table: one row per route, plus the city
// and service catalogs used to resolve related links.
type Site struct {
	Cities   []City
	Services []Service
	Pages    []Descriptor

	byRoute       map[string]int
	cities        map[string]City
	services      map[string]Service
	byCityService map[string]int
}

// NewSite normalises and validates the table and builds its indexes. All
// validation problems are reported together.
func NewSite(cities []City, services []Service, pages []Descriptor) (*Site, error) {
	s := &Site{
		Cities:        make([]City, 0, len(cities)),
		Services:      make([]Service, 0, len(services)),
		Pages:         make([]Descriptor, 0, len(pages)),
		byRoute:       make(map[string]int, len(pages)),
		cities:        make(map[string]City, len(cities)),
		services:      make(map[string]Service, len(services)),
		byCityService: make(map[string]int),
	}
	var errs []error

	for _, c := range cities {
		c.Slug = sanitizeSlug(c.Slug)
		if c.Slug == "" {
			errs = append(errs, &ValidationError{Source: catalogFile, Field: "city slug", Message: "is required"})
			continue
		}
		if _, dup := s.cities[c.Slug]; dup {
			errs = append(errs, &ValidationError{Source: catalogFile, Field: "city " + c.Slug, Message: "is defined twice"})
			continue
		}
		nearby := make([]string, 0, len(c.Nearby))
		for _, n := range c.Nearby {
			nearby = append(nearby, sanitizeSlug(n))
		}
		c.Nearby = nearby
		s.cities[c.Slug] = c
		s.Cities = append(s.Cities, c)
	}
	for _, c := range s.Cities {
		for _, n := range c.Nearby {
			if _, ok := s.cities[n]; !ok {
				errs = append(errs, &ValidationError{Source: catalogFile, Field: "city " + c.Slug, Message: fmt.Sprintf("lists unknown nearby city %q", n)})
			}
		}
	}
	for _, svc := range services {
		svc.Slug = sanitizeSlug(svc.Slug)
		if svc.Slug == "" {
			errs = append(errs, &ValidationError{Source: catalogFile, Field: "service slug", Message: "is required"})
			continue
		}
		if _, dup := s.services[svc.Slug]; dup {
			errs = append(errs, &ValidationError{Source: catalogFile, Field: "service " + svc.Slug, Message: "is defined twice"})
			continue
		}
		s.services[svc.Slug] = svc
		s.Services = append(s.Services, svc)
	}

	for _, d := range pages {
		d, perrs := s.normalize(d)
		if len(perrs) > 0 {
			errs = append(errs, perrs...)
			continue
		}
		if prev, dup := s.byRoute[d.Route]; dup {
			errs = append(errs, &ValidationError{Source: d.Source, Route: d.Route, Field: "route", Message: fmt.Sprintf("duplicates %s", s.Pages[prev].Source)})
			continue
		}
		if d.Kind == KindServiceLocation {
			key := cityServiceKey(d.City, d.Service)
			if prev, dup := s.byCityService[key]; dup {
				errs = append(errs, &ValidationError{Source: d.Source, Route: d.Route, Field: "city/service", Message: fmt.Sprintf("pair already served by %s", s.Pages[prev].Route)})
				continue
			}
			s.byCityService[key] = len(s.Pages)
		}
		s.byRoute[d.Route] = len(s.Pages)
		s.Pages = append(s.Pages, d)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

func (s *Site) normalize(d Descriptor) (Descriptor, []error) {
	var errs []error
	fail := func(field, msg string) {
		errs = append(errs, &ValidationError{Source: d.Source, Route: d.Route, Field: field, Message: msg})
	}

	d.Sections = append([]Section(nil), d.Sections...)
	d.Links = append([]LinkGroup(nil), d.Links...)
	d.FAQ.Entries = append([]FAQEntry(nil), d.FAQ.Entries...)
	d.Breadcrumbs = append([]BreadcrumbItem(nil), d.Breadcrumbs...)
	d.Route = NormalizeRoute(d.Route)
	if d.Route == "" {
		fail("route", "is required")
	}
	d.Kind = strings.TrimSpace(strings.ToLower(d.Kind))
	switch d.Kind {
	case "":
		d.Kind = KindTopic
	case KindHome, KindService, KindLocation, KindServiceLocation, KindTopic:
	default:
		fail("kind", fmt.Sprintf("%q is unknown", d.Kind))
	}
	d.City = sanitizeSlug(d.City)
	d.Service = sanitizeSlug(d.Service)
	if d.City != "" {
		if _, ok := s.cities[d.City]; !ok {
			fail("city", fmt.Sprintf("%q is not in the city catalog", d.City))
		}
	}
	if d.Service != "" {
		if _, ok := s.services[d.Service]; !ok {
			fail("service", fmt.Sprintf("%q is not in the service catalog", d.Service))
		}
	}
	if d.Kind == KindServiceLocation && (d.City == "" || d.Service == "") {
		fail("kind", "service-location pages need both city and service")
	}

	for i := range d.Sections {
		sec := &d.Sections[i]
		sec.Kind = strings.TrimSpace(strings.ToLower(sec.Kind))
		if sec.Kind == "" {
			sec.Kind = SectionProse
		}
		if sec.ID == "" {
			sec.ID = fmt.Sprintf("section-%d", i+1)
		}
		switch sec.Kind {
		case SectionProse, SectionCallout, SectionFeatures, SectionSteps, SectionLinks:
		case SectionTable:
			if sec.Table == nil {
				fail("sections["+sec.ID+"]", "table section has no table")
				continue
			}
			for r, row := range sec.Table.Rows {
				if len(sec.Table.Header) > 0 && len(row) != len(sec.Table.Header) {
					fail("sections["+sec.ID+"]", fmt.Sprintf("row %d has %d cells, header has %d", r+1, len(row), len(sec.Table.Header)))
				}
			}
		default:
			fail("sections["+sec.ID+"]", fmt.Sprintf("kind %q is unknown", sec.Kind))
		}
	}

	// Visible markup and structured data both print these verbatim, so block
	// scalar newlines must not survive into either.
	for i := range d.FAQ.Entries {
		e := &d.FAQ.Entries[i]
		e.Question = strings.TrimSpace(e.Question)
		e.Answer = strings.TrimSpace(e.Answer)
	}
	for i := range d.Breadcrumbs {
		b := &d.Breadcrumbs[i]
		b.Name = strings.TrimSpace(b.Name)
		b.Href = strings.TrimSpace(b.Href)
	}

	for i := range d.Links {
		g := &d.Links[i]
		g.Kind = strings.TrimSpace(strings.ToLower(g.Kind))
		if g.Kind == "" {
			g.Kind = LinksList
		}
		switch g.Kind {
		case LinksList:
		case LinksRelatedServices:
			if d.City == "" {
				fail("links", "related-services needs a city")
			}
		case LinksNearbyLocations:
			if d.Service == "" {
				fail("links", "nearby-locations needs a service")
			}
		default:
			fail("links", fmt.Sprintf("kind %q is unknown", g.Kind))
		}
	}
	return d, errs
}

func cityServiceKey(city, service string) string {
	return city + "|" + service
}

// Page returns the descriptor for a route.
func (s *Site) Page(route string) (Descriptor, error) {
	if s == nil {
		return Descriptor{}, ErrNotFound
	}
	idx, ok := s.byRoute[NormalizeRoute(route)]
	if !ok {
		return Descriptor{}, ErrNotFound
	}
	return s.Pages[idx], nil
}

// Has reports whether a route exists.
func (s *Site) Has(route string) bool {
	if s == nil {
		return false
	}
	_, ok := s.byRoute[NormalizeRoute(route)]
	return ok
}

// Routes returns every route in sorted order.
func (s *Site) Routes() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Pages))
	for _, d := range s.Pages {
		out = append(out, d.Route)
	}
	sort.Strings(out)
	return out
}

// Label returns the navigation label of a known route.
func (s *Site) Label(route string) (string, bool) {
	d, err := s.Page(route)
	if err != nil {
		return "", false
	}
	label := d.NavLabel()
	return label, label != ""
}

// City looks up a city by slug.
func (s *Site) City(slug string) (City, bool) {
	if s == nil {
		return City{}, false
	}
	c, ok := s.cities[sanitizeSlug(slug)]
	return c, ok
}

// Service looks up a service by slug.
func (s *Site) Service(slug string) (Service, bool) {
	if s == nil {
		return Service{}, false
	}
	svc, ok := s.services[sanitizeSlug(slug)]
	return svc, ok
}

// RelatedServices lists the other service pages offered in a city, in service
// catalog order.
func (s *Site) RelatedServices(city, exclude string) []Link {
	c, ok := s.City(city)
	if !ok {
		return nil
	}
	exclude = sanitizeSlug(exclude)
	var links []Link
	for _, svc := range s.Services {
		if svc.Slug == exclude {
			continue
		}
		idx, ok := s.byCityService[cityServiceKey(c.Slug, svc.Slug)]
		if !ok {
			continue
		}
		links = append(links, Link{
			Title:       fmt.Sprintf("%s in %s", svc.Name, c.Name),
			Href:        s.Pages[idx].Route,
			Description: svc.Summary,
			Icon:        svc.Icon,
		})
	}
	return links
}

// NearbyLocations lists pages for the same service in the city's nearby
// cities, in the order the catalog lists them. When none of the nearby cities
// is served, every other city offering the service is listed instead.
func (s *Site) NearbyLocations(service, city string) []Link {
	svc, ok := s.Service(service)
	if !ok {
		return nil
	}
	city = sanitizeSlug(city)
	link := func(c City) (Link, bool) {
		idx, ok := s.byCityService[cityServiceKey(c.Slug, svc.Slug)]
		if !ok {
			return Link{}, false
		}
		desc := fmt.Sprintf("%s for %s", svc.Name, c.Name)
		if c.County != "" {
			desc = fmt.Sprintf("%s for %s and %s County", svc.Name, c.Name, c.County)
		}
		return Link{Title: fmt.Sprintf("%s in %s", svc.Name, c.Name), Href: s.Pages[idx].Route, Description: desc, Icon: svc.Icon}, true
	}

	var links []Link
	if c, ok := s.City(city); ok {
		for _, n := range c.Nearby {
			if nc, ok := s.cities[n]; ok {
				if l, ok := link(nc); ok {
					links = append(links, l)
				}
			}
		}
	}
	if len(links) > 0 {
		return links
	}
	for _, c := range s.Cities {
		if c.Slug == city {
			continue
		}
		if l, ok := link(c); ok {
			links = append(links, l)
		}
	}
	return links
}

// ResolveLinks returns the links of a group for the given page, looking up
// related-services and nearby-locations groups from the page's keys.
func (s *Site) ResolveLinks(g LinkGroup, d Descriptor) []Link {
	var links []Link
	switch g.Kind {
	case LinksRelatedServices:
		links = s.RelatedServices(d.City, d.Service)
	case LinksNearbyLocations:
		links = s.NearbyLocations(d.Service, d.City)
	default:
		links = g.Links
	}
	if g.Limit > 0 && len(links) > g.Limit {
		links = links[:g.Limit]
	}
	return links
}
