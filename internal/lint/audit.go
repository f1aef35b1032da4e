package lint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Audit rule names.
const (
	RuleAuditParse      = "audit-parse"
	RuleAuditHeading    = "audit-h1"
	RuleAuditCanonical  = "audit-canonical"
	RuleAuditFAQ        = "audit-faq"
	RuleAuditBreadcrumb = "audit-breadcrumb"
)

type faqSchema struct {
	MainEntity []struct {
		Type           string `json:"@type"`
		Name           string `json:"name"`
		AcceptedAnswer struct {
			Type string `json:"@type"`
			Text string `json:"text"`
		} `json:"acceptedAnswer"`
	} `json:"mainEntity"`
}

type breadcrumbSchema struct {
	Items []struct {
		Position int    `json:"position"`
		Name     string `json:"name"`
		Item     string `json:"item"`
	} `json:"itemListElement"`
}

// Audit parses a rendered page and checks that the visible FAQ and breadcrumb
// match their structured data, that there is exactly one h1 and that a
// canonical link is present.
func Audit(html []byte, route string) []Finding {
	var out []Finding
	add := func(rule, format string, args ...any) {
		out = append(out, Finding{Route: route, Rule: rule, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		add(RuleAuditParse, "parse html: %v", err)
		return out
	}

	if n := doc.Find("h1").Length(); n != 1 {
		add(RuleAuditHeading, "found %d h1 elements, want 1", n)
	}
	if href, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); !ok || strings.TrimSpace(href) == "" {
		add(RuleAuditCanonical, "canonical link missing")
	}

	blocks := map[string][]json.RawMessage{}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := json.RawMessage(s.Text())
		var head struct {
			Type string `json:"@type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			add(RuleAuditParse, "invalid JSON-LD: %v", err)
			return
		}
		blocks[head.Type] = append(blocks[head.Type], raw)
	})

	auditFAQ(doc, blocks["FAQPage"], add)
	auditBreadcrumb(doc, blocks["BreadcrumbList"], route, add)
	return out
}

func auditFAQ(doc *goquery.Document, blocks []json.RawMessage, add func(string, string, ...any)) {
	items := doc.Find("details[data-faq-item]")
	if items.Length() == 0 && len(blocks) == 0 {
		return
	}
	if len(blocks) != 1 {
		add(RuleAuditFAQ, "found %d FAQPage blocks for %d visible questions", len(blocks), items.Length())
		return
	}
	var schema faqSchema
	if err := json.Unmarshal(blocks[0], &schema); err != nil {
		add(RuleAuditFAQ, "decode FAQPage: %v", err)
		return
	}
	if len(schema.MainEntity) != items.Length() {
		add(RuleAuditFAQ, "%d visible questions but %d in FAQPage", items.Length(), len(schema.MainEntity))
		return
	}
	items.Each(func(i int, s *goquery.Selection) {
		q := schema.MainEntity[i]
		question := strings.TrimSpace(s.Find(".faq-question").Text())
		answer := strings.TrimSpace(s.Find(".faq-answer").Text())
		if q.Type != "Question" || q.AcceptedAnswer.Type != "Answer" {
			add(RuleAuditFAQ, "entry %d has types %q/%q", i+1, q.Type, q.AcceptedAnswer.Type)
		}
		if question != q.Name {
			add(RuleAuditFAQ, "question %d differs: visible %q, structured %q", i+1, question, q.Name)
		}
		if answer != q.AcceptedAnswer.Text {
			add(RuleAuditFAQ, "answer %d differs from structured data", i+1)
		}
	})
}

func auditBreadcrumb(doc *goquery.Document, blocks []json.RawMessage, route string, add func(string, string, ...any)) {
	items := doc.Find(`nav[aria-label="Breadcrumb"] ol li`)
	if items.Length() == 0 && len(blocks) == 0 {
		return
	}
	if len(blocks) != 1 {
		add(RuleAuditBreadcrumb, "found %d BreadcrumbList blocks for %d visible crumbs", len(blocks), items.Length())
		return
	}
	var schema breadcrumbSchema
	if err := json.Unmarshal(blocks[0], &schema); err != nil {
		add(RuleAuditBreadcrumb, "decode BreadcrumbList: %v", err)
		return
	}
	if len(schema.Items) != items.Length() {
		add(RuleAuditBreadcrumb, "%d visible crumbs but %d in BreadcrumbList", items.Length(), len(schema.Items))
		return
	}
	if len(schema.Items) == 0 {
		add(RuleAuditBreadcrumb, "BreadcrumbList has no items")
		return
	}
	items.Each(func(i int, s *goquery.Selection) {
		it := schema.Items[i]
		if it.Position != i+1 {
			add(RuleAuditBreadcrumb, "crumb %d has position %d", i+1, it.Position)
		}
		if name := strings.TrimSpace(s.Text()); name != it.Name {
			add(RuleAuditBreadcrumb, "crumb %d differs: visible %q, structured %q", i+1, name, it.Name)
		}
	})
	last := schema.Items[len(schema.Items)-1]
	if !strings.HasSuffix(last.Item, route) {
		add(RuleAuditBreadcrumb, "last crumb points at %q, want %q", last.Item, route)
	}
	if items.Last().Find(`[aria-current="page"]`).Length() != 1 {
		add(RuleAuditBreadcrumb, "last crumb is not marked as the current page")
	}
}
