// Package report prints human-readable build and lint summaries.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/milburnr/fcs-site-sub002/internal/build"
	"github.com/milburnr/fcs-site-sub002/internal/lint"
)

// Reporter writes colored progress lines to w.
type Reporter struct {
	w     io.Writer
	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
	label *color.Color
	dim   *color.Color
}

// New returns a Reporter. Colors are dropped when noColor is set, which
// callers do for non-terminal output.
func New(w io.Writer, noColor bool) *Reporter {
	r := &Reporter{
		w:     w,
		ok:    color.New(color.FgHiGreen),
		warn:  color.New(color.FgHiYellow),
		fail:  color.New(color.FgHiRed, color.Bold),
		label: color.New(color.FgHiWhite, color.Bold),
		dim:   color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{r.ok, r.warn, r.fail, r.label, r.dim} {
			c.DisableColor()
		}
	}
	return r
}

// Step prints a progress line.
func (r *Reporter) Step(format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", r.label.Sprint("==>"), fmt.Sprintf(format, args...))
}

// Findings prints every finding, errors first.
func (r *Reporter) Findings(fs []lint.Finding) {
	for _, sev := range []lint.Severity{lint.SeverityError, lint.SeverityWarning} {
		for _, f := range fs {
			if f.Severity != sev {
				continue
			}
			c := r.warn
			if sev == lint.SeverityError {
				c = r.fail
			}
			fmt.Fprintf(r.w, "  %s %s %s %s\n", c.Sprintf("%-7s", sev), f.Route, r.dim.Sprintf("[%s]", f.Rule), f.Message)
		}
	}
}

// Lint prints a lint report and its totals.
func (r *Reporter) Lint(rep lint.Report) {
	r.Findings(rep.Findings)
	errs, warns := len(rep.Errors()), len(rep.Warnings())
	switch {
	case errs > 0:
		fmt.Fprintf(r.w, "%s %d error(s), %d warning(s)\n", r.fail.Sprint("FAIL"), errs, warns)
	case warns > 0:
		fmt.Fprintf(r.w, "%s %d warning(s)\n", r.warn.Sprint("WARN"), warns)
	default:
		fmt.Fprintf(r.w, "%s content is clean\n", r.ok.Sprint("OK"))
	}
}

// Build prints one line per page and a summary.
func (r *Reporter) Build(res build.Result) {
	for _, p := range res.Pages {
		state := r.ok.Sprint("wrote  ")
		if !p.Written {
			state = r.dim.Sprint("skipped")
		}
		fmt.Fprintf(r.w, "  %s %-45s %s\n", state, p.Route, r.dim.Sprintf("%6d B", p.Bytes))
	}
	for _, route := range res.Pruned {
		fmt.Fprintf(r.w, "  %s %s\n", r.warn.Sprint("pruned "), route)
	}
	r.Findings(res.Findings)
	status := r.ok.Sprint("OK")
	if len(res.Findings) > 0 {
		status = r.fail.Sprint("FAIL")
	}
	fmt.Fprintf(r.w, "%s %d page(s), %d written, %d skipped, %d asset(s) in %s\n",
		status, len(res.Pages), len(res.Pages)-res.Skipped, res.Skipped, res.Assets, res.Duration.Round(time.Millisecond))
}
