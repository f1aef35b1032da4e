package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPage = `<!doctype html><html><head>
<link rel="canonical" href="https://fcs.example/a/">
<script type="application/ld+json">{"@type":"FAQPage","mainEntity":[{"@type":"Question","name":"Q1?","acceptedAnswer":{"@type":"Answer","text":"A1."}}]}</script>
</head><body>
<nav aria-label="Breadcrumb"><ol><li><a href="/">Home</a></li><li><span aria-current="page">A</span></li></ol></nav>
<script type="application/ld+json">{"@type":"BreadcrumbList","itemListElement":[{"@type":"ListItem","position":1,"name":"Home","item":"https://fcs.example/"},{"@type":"ListItem","position":2,"name":"A","item":"https://fcs.example/a/"}]}</script>
<h1>A</h1>
<details data-faq-item><summary class="faq-question">Q1?</summary><p class="faq-answer">A1.</p></details>
</body></html>`

func TestAuditAcceptsConsistentPage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Audit([]byte(goodPage), "/a/"))
}

func TestAuditFindsDrift(t *testing.T) {
	t.Parallel()

	page := `<html><head></head><body><h1>A</h1><h1>B</h1>
<details data-faq-item><summary class="faq-question">Visible?</summary><p class="faq-answer">A1.</p></details>
<script type="application/ld+json">{"@type":"FAQPage","mainEntity":[{"@type":"Question","name":"Structured?","acceptedAnswer":{"@type":"Answer","text":"A1."}}]}</script>
<nav aria-label="Breadcrumb"><ol><li><a href="/">Home</a></li><li><span aria-current="page">A</span></li></ol></nav>
<script type="application/ld+json">{"@type":"BreadcrumbList","itemListElement":[{"position":1,"name":"Home","item":"https://fcs.example/"},{"position":3,"name":"A","item":"https://fcs.example/a/"}]}</script>
</body></html>`

	got := rules(Audit([]byte(page), "/a/"))
	require.NotEmpty(t, got)
	assert.Contains(t, got, RuleAuditHeading)
	assert.Contains(t, got, RuleAuditCanonical)
	assert.Contains(t, got, RuleAuditFAQ)
	assert.Contains(t, got, RuleAuditBreadcrumb)
}

func TestAuditRequiresStructuredFAQ(t *testing.T) {
	t.Parallel()

	page := `<html><head><link rel="canonical" href="/x/"></head><body><h1>x</h1>
<details data-faq-item><summary class="faq-question">Q?</summary><p class="faq-answer">A.</p></details></body></html>`
	assert.Equal(t, []string{RuleAuditFAQ}, rules(Audit([]byte(page), "/x/")))
}

func TestAuditRejectsEmptyBreadcrumbList(t *testing.T) {
	t.Parallel()

	page := `<html><head><link rel="canonical" href="/x/"></head><body><h1>x</h1>
<script type="application/ld+json">{"@type":"BreadcrumbList","itemListElement":[]}</script></body></html>`
	assert.Equal(t, []string{RuleAuditBreadcrumb}, rules(Audit([]byte(page), "/x/")))
}
