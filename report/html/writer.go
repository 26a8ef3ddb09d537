package html

import (
	_ "embed" // use go embed to import template
	"fmt"
	"html/template"
	"io"

	"github.com/Masterminds/sprig/v3"

	"github.com/testtally/tally"
)

//go:embed template.html
var templateContent string

// WriteReport write a report in html format to the output writer. The page
// is self contained: styling and behavior are inlined and no external
// assets are referenced, so the artifact is safe to open standalone.
func WriteReport(w io.Writer, data *tally.ReportInfo) error {
	t, e := template.
		New("tally").
		Funcs(sprig.HtmlFuncMap()).
		Funcs(reportFuncMap()).
		Parse(templateContent)
	if e != nil {
		return e
	}

	return t.Execute(w, data)
}

func reportFuncMap() template.FuncMap {
	return template.FuncMap{
		"percent":       percent,
		"durationClass": durationClass,
	}
}

// percent renders a 0..1 rate for display
func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// durationClass buckets a duration for the slowest-tests styling
func durationClass(seconds float64) string {
	switch {
	case seconds > 5.0:
		return "slow"
	case seconds > 2.0:
		return "medium"
	default:
		return "fast"
	}
}
