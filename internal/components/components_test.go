package components

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/milburnr/fcs-site-sub002/internal/content"
	"github.com/milburnr/fcs-site-sub002/internal/testutil"
)

func render(t *testing.T, n g.Node) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return testutil.ParseHTML(t, buf.Bytes())
}

func TestFAQRendersEveryEntryInBothForms(t *testing.T) {
	t.Parallel()

	faq := content.FAQ{Title: "Sarasota Construction FAQ"}
	for i := 1; i <= 8; i++ {
		faq.Entries = append(faq.Entries, content.FAQEntry{
			Question: fmt.Sprintf("Question %d about permits & inspections?", i),
			Answer:   fmt.Sprintf("Answer %d: we handle <everything>.", i),
		})
	}
	doc := render(t, FAQ(faq))

	items := doc.Find("details[data-faq-item]")
	require.Equal(t, 8, items.Length())

	blocks := testutil.JSONLD(doc)
	require.Len(t, blocks, 1)
	var decoded struct {
		Type       string `json:"@type"`
		MainEntity []struct {
			Type           string `json:"@type"`
			Name           string `json:"name"`
			AcceptedAnswer struct {
				Type string `json:"@type"`
				Text string `json:"text"`
			} `json:"acceptedAnswer"`
		} `json:"mainEntity"`
	}
	require.NoError(t, json.Unmarshal([]byte(blocks[0]), &decoded))
	require.Equal(t, "FAQPage", decoded.Type)
	require.Len(t, decoded.MainEntity, 8)

	questions := testutil.Texts(doc, "details[data-faq-item] .faq-question")
	answers := testutil.Texts(doc, "details[data-faq-item] .faq-answer")
	for i, q := range decoded.MainEntity {
		assert.Equal(t, "Question", q.Type)
		assert.Equal(t, "Answer", q.AcceptedAnswer.Type)
		assert.Equal(t, questions[i], q.Name)
		assert.Equal(t, answers[i], q.AcceptedAnswer.Text)
		assert.Equal(t, faq.Entries[i].Answer, answers[i])
	}
}

func TestFAQEmptyRendersNothing(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FAQ(content.FAQ{Title: "Nothing"}))
}

func TestBreadcrumbTrailAndPositions(t *testing.T) {
	t.Parallel()

	trail := []content.BreadcrumbItem{
		{Name: "Home", Href: "/"},
		{Name: "Services", Href: "/services/"},
		{Name: "Sarasota", Href: "/commercial-construction-sarasota/"},
	}
	doc := render(t, Breadcrumb(trail, "https://fcs.example"))

	assert.Equal(t, []string{"Home", "Services", "Sarasota"}, testutil.Texts(doc, `nav[aria-label="Breadcrumb"] ol li`))
	current := doc.Find(`nav[aria-label="Breadcrumb"] [aria-current="page"]`)
	require.Equal(t, 1, current.Length())
	assert.Equal(t, "Sarasota", current.Text())
	href, _ := doc.Find(`nav[aria-label="Breadcrumb"] a`).Eq(1).Attr("href")
	assert.Equal(t, "/services/", href)

	blocks := testutil.JSONLD(doc)
	require.Len(t, blocks, 1)
	var decoded struct {
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
			Item     string `json:"item"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal([]byte(blocks[0]), &decoded))
	require.Len(t, decoded.Items, 3)
	for i, name := range []string{"Home", "Services", "Sarasota"} {
		assert.Equal(t, i+1, decoded.Items[i].Position)
		assert.Equal(t, name, decoded.Items[i].Name)
	}
	assert.Equal(t, "https://fcs.example/commercial-construction-sarasota/", decoded.Items[2].Item)
}

func TestGoogleMapEncodesCity(t *testing.T) {
	t.Parallel()

	doc := render(t, GoogleMap("Ruskin", "FL", 0))
	src, ok := doc.Find("iframe").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "https://www.google.com/maps?output=embed&q=Ruskin%2C+FL", src)
	height, _ := doc.Find("iframe").Attr("height")
	assert.Equal(t, "450", height)
	assert.Nil(t, GoogleMap(" ", "FL", 300))
}

func TestHighLevelFormEmbedsWidget(t *testing.T) {
	t.Parallel()

	biz := content.Business{Phone: "(941) 555-0100"}
	doc := render(t, HighLevelForm("abc123", 700, biz))
	src, _ := doc.Find("iframe").Attr("src")
	assert.Equal(t, "https://api.leadconnectorhq.com/widget/form/abc123", src)
	assert.Equal(t, 1, doc.Find(`script[src="https://link.msgsndr.com/js/form_embed.js"]`).Length())

	fallback := render(t, HighLevelForm("", 0, biz))
	href, _ := fallback.Find("a").Attr("href")
	assert.Equal(t, "tel:9415550100", href)
	assert.Equal(t, 0, fallback.Find("iframe").Length())
}

func TestStepsAreNumberedByPosition(t *testing.T) {
	t.Parallel()

	doc := render(t, Steps("process", "How It Works", []content.Step{
		{Title: "Inspect"}, {Title: "Quote"}, {Title: "Build"},
	}))
	assert.Equal(t, []string{"1", "2", "3"}, testutil.Texts(doc, "ol li .step-number"))
}

func TestTableRendersHeaderAndRows(t *testing.T) {
	t.Parallel()

	doc := render(t, Table("compare", "", &content.Table{
		Header: []string{"Glass", "Rating"},
		Rows:   [][]string{{"Laminated", "Impact"}, {"Tempered", "Safety"}},
	}))
	assert.Equal(t, []string{"Glass", "Rating"}, testutil.Texts(doc, "thead th"))
	assert.Equal(t, 2, doc.Find("tbody tr").Length())
	assert.Nil(t, Table("x", "", nil))
}

func TestHeroFallsBackToTitle(t *testing.T) {
	t.Parallel()

	doc := render(t, Hero(content.Hero{}, "Commercial Construction in Tampa", content.Business{}))
	assert.Equal(t, []string{"Commercial Construction in Tampa"}, testutil.Texts(doc, "h1"))
}
