package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/milburnr/fcs-site-sub002/internal/build"
	"github.com/milburnr/fcs-site-sub002/internal/lint"
)

func TestLintReportOrdersErrorsFirst(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true).Lint(lint.Report{Findings: []lint.Finding{
		{Route: "/a/", Rule: lint.RuleTitleLength, Severity: lint.SeverityWarning, Message: "too long"},
		{Route: "/b/", Rule: lint.RuleLinkIntegrity, Severity: lint.SeverityError, Message: "broken"},
	}})
	out := buf.String()
	assert.Less(t, strings.Index(out, "broken"), strings.Index(out, "too long"))
	assert.Contains(t, out, "FAIL 1 error(s), 1 warning(s)")
	assert.NotContains(t, out, "\x1b[")
}

func TestLintReportClean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true).Lint(lint.Report{})
	assert.Equal(t, "OK content is clean\n", buf.String())
}

func TestBuildSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true).Build(build.Result{
		Pages: []build.PageResult{
			{Route: "/", Bytes: 100, Written: true},
			{Route: "/a/", Bytes: 200},
		},
		Skipped:  1,
		Pruned:   []string{"/old/"},
		Duration: 1500 * time.Millisecond,
	})
	out := buf.String()
	assert.Contains(t, out, "skipped /a/")
	assert.Contains(t, out, "pruned  /old/")
	assert.Contains(t, out, "OK 2 page(s), 1 written, 1 skipped, 0 asset(s) in 1.5s")
}
