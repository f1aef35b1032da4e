package content

import "strings"

// Page kinds. The kind only selects which structured data blocks and related
// link lookups apply; every kind renders through the same template.
const (
	KindHome            = "home"
	KindService         = "service"
	KindLocation        = "location"
	KindServiceLocation = "service-location"
	KindTopic           = "topic"
)

// Section kinds.
const (
	SectionProse    = "prose"
	SectionFeatures = "features"
	SectionSteps    = "steps"
	SectionTable    = "table"
	SectionLinks    = "links"
	SectionCallout  = "callout"
)

// Link group kinds.
const (
	LinksList            = "list"
	LinksRelatedServices = "related-services"
	LinksNearbyLocations = "nearby-locations"
)

// Business is the company identity injected into every render.
type Business struct {
	Name         string   `yaml:"name" mapstructure:"name"`
	LegalName    string   `yaml:"legal_name" mapstructure:"legal_name"`
	Phone        string   `yaml:"phone" mapstructure:"phone"`
	PhoneRaw     string   `yaml:"phone_raw" mapstructure:"phone_raw"`
	Email        string   `yaml:"email" mapstructure:"email"`
	URL          string   `yaml:"url" mapstructure:"url"`
	Logo         string   `yaml:"logo" mapstructure:"logo"`
	Image        string   `yaml:"image" mapstructure:"image"`
	PriceRange   string   `yaml:"price_range" mapstructure:"price_range"`
	Address      Address  `yaml:"address" mapstructure:"address"`
	Geo          Geo      `yaml:"geo" mapstructure:"geo"`
	OpeningHours []string `yaml:"opening_hours" mapstructure:"opening_hours"`
	AreaServed   []string `yaml:"area_served" mapstructure:"area_served"`
	SameAs       []string `yaml:"same_as" mapstructure:"same_as"`
	License      string   `yaml:"license" mapstructure:"license"`
}

// Address is a postal address.
type Address struct {
	Street     string `yaml:"street" mapstructure:"street"`
	City       string `yaml:"city" mapstructure:"city"`
	Region     string `yaml:"region" mapstructure:"region"`
	PostalCode string `yaml:"postal_code" mapstructure:"postal_code"`
	Country    string `yaml:"country" mapstructure:"country"`
}

// Geo holds coordinates for the business location.
type Geo struct {
	Lat float64 `yaml:"lat" mapstructure:"lat"`
	Lng float64 `yaml:"lng" mapstructure:"lng"`
}

// TelHref returns the tel: URI for the business phone, preferring PhoneRaw.
func (b Business) TelHref() string {
	raw := strings.TrimSpace(b.PhoneRaw)
	if raw == "" {
		raw = dialable(b.Phone)
	}
	if raw == "" {
		return ""
	}
	return "tel:" + raw
}

// DisplayName returns the legal name when set, otherwise the trading name.
func (b Business) DisplayName() string {
	return firstNonEmpty(b.LegalName, b.Name)
}

func dialable(phone string) string {
	var sb strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '+' && i == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Metadata is the head metadata for a page.
type Metadata struct {
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty"`
	OGImage     string   `yaml:"og_image,omitempty"`
	Robots      string   `yaml:"robots,omitempty"`
}

// BreadcrumbItem is one node of the trail from home to the current page.
type BreadcrumbItem struct {
	Name string `yaml:"name,omitempty"`
	Href string `yaml:"href,omitempty"`
}

// FAQEntry is a single question and answer.
type FAQEntry struct {
	Question string `yaml:"question,omitempty"`
	Answer   string `yaml:"answer,omitempty"`
}

// FAQ groups the entries rendered in the accordion and emitted as FAQPage data.
type FAQ struct {
	Title       string     `yaml:"title,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Entries     []FAQEntry `yaml:"entries,omitempty"`
}

// Link is an internal link card.
type Link struct {
	Title       string `yaml:"title,omitempty"`
	Href        string `yaml:"href,omitempty"`
	Description string `yaml:"description,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
}

// LinkGroup is a titled block of links. Groups of kind related-services and
// nearby-locations are resolved from the page's city and service keys.
type LinkGroup struct {
	Title string `yaml:"title,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Limit int    `yaml:"limit,omitempty"`
	Links []Link `yaml:"links,omitempty"`
}

// Feature is a service feature card.
type Feature struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	Href        string `yaml:"href,omitempty"`
}

// Step is a numbered process step; its number is its position.
type Step struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Table is a static comparison table.
type Table struct {
	Caption string     `yaml:"caption,omitempty"`
	Header  []string   `yaml:"header,omitempty"`
	Rows    [][]string `yaml:"rows,omitempty"`
}

// Section is one block of the page body.
type Section struct {
	ID       string    `yaml:"id,omitempty"`
	Kind     string    `yaml:"kind,omitempty"`
	Heading  string    `yaml:"heading,omitempty"`
	Body     string    `yaml:"body,omitempty"`
	Features []Feature `yaml:"features,omitempty"`
	Steps    []Step    `yaml:"steps,omitempty"`
	Table    *Table    `yaml:"table,omitempty"`
	Links    []Link    `yaml:"links,omitempty"`
}

// Hero is the banner at the top of the page.
type Hero struct {
	Eyebrow    string   `yaml:"eyebrow,omitempty"`
	Heading    string   `yaml:"heading,omitempty"`
	Subheading string   `yaml:"subheading,omitempty"`
	Image      string   `yaml:"image,omitempty"`
	ImageAlt   string   `yaml:"image_alt,omitempty"`
	Badges     []string `yaml:"badges,omitempty"`
}

// CTA is the closing call-to-action.
type CTA struct {
	Heading     string `yaml:"heading,omitempty"`
	Body        string `yaml:"body,omitempty"`
	ButtonLabel string `yaml:"button_label,omitempty"`
	FormHeight  int    `yaml:"form_height,omitempty"`
}

// Article enables Article structured data for long-form topic pages.
type Article struct {
	Headline      string `yaml:"headline,omitempty"`
	Author        string `yaml:"author,omitempty"`
	DatePublished string `yaml:"date_published,omitempty"`
	DateModified  string `yaml:"date_modified,omitempty"`
	Image         string `yaml:"image,omitempty"`
}

// Descriptor is the complete content of one route.
type Descriptor struct {
	Route       string           `yaml:"route"`
	Kind        string           `yaml:"kind,omitempty"`
	Label       string           `yaml:"label,omitempty"`
	City        string           `yaml:"city,omitempty"`
	Service     string           `yaml:"service,omitempty"`
	Metadata    Metadata         `yaml:"metadata,omitempty"`
	Hero        Hero             `yaml:"hero,omitempty"`
	Sections    []Section        `yaml:"sections,omitempty"`
	FAQ         FAQ              `yaml:"faq,omitempty"`
	Breadcrumbs []BreadcrumbItem `yaml:"breadcrumbs,omitempty"`
	Links       []LinkGroup      `yaml:"links,omitempty"`
	Article     *Article         `yaml:"article,omitempty"`
	Map         bool             `yaml:"map,omitempty"`
	CTA         CTA              `yaml:"cta,omitempty"`

	// Source is the file the descriptor was loaded from.
	Source string `yaml:"-"`
}

// NavLabel is the short label used in breadcrumbs and link cards.
func (d Descriptor) NavLabel() string {
	return firstNonEmpty(d.Label, d.Hero.Heading, d.Metadata.Title)
}

// City is a served location.
type City struct {
	Slug   string   `yaml:"slug"`
	Name   string   `yaml:"name"`
	County string   `yaml:"county"`
	Nearby []string `yaml:"nearby"`
}

// Service is an offered service line.
type Service struct {
	Slug    string `yaml:"slug"`
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
	Icon    string `yaml:"icon"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
