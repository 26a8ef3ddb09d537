package text

import (
	_ "embed" // use go embed to import template
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/gookit/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/testtally/tally"
)

var (
	criticalTheme = color.New(color.FgLightWhite, color.BgRed)
	warningTheme  = color.New(color.FgBlack, color.BgYellow)
	successTheme  = color.New(color.FgBlack, color.BgGreen)
	defaultTheme  = color.New(color.FgWhite, color.BgBlack)

	//go:embed template.txt
	templateContent string
)

// WriteReport write a (colorized) report in text format
func WriteReport(w io.Writer, data *tally.ReportInfo, enableColor bool) error {
	t, e := template.
		New("tally").
		Funcs(sprig.FuncMap()).
		Funcs(plainTextFuncMap(enableColor)).
		Parse(templateContent)
	if e != nil {
		return e
	}

	return t.Execute(w, data)
}

func plainTextFuncMap(enableColor bool) template.FuncMap {
	if enableColor {
		return template.FuncMap{
			"highlight":     highlight,
			"danger":        color.Danger.Render,
			"notice":        color.Notice.Render,
			"success":       color.Success.Render,
			"percent":       percent,
			"categoryTable": categoryTable,
		}
	}

	// by default those functions return the given content untouched
	return template.FuncMap{
		"highlight": func(t string, g tally.Grade) string {
			return t
		},
		"danger":        fmt.Sprint,
		"notice":        fmt.Sprint,
		"success":       fmt.Sprint,
		"percent":       percent,
		"categoryTable": categoryTable,
	}
}

// highlight returns content t colored based on the report grade
func highlight(t string, g tally.Grade) string {
	switch g {
	case tally.Critical:
		return criticalTheme.Sprint(t)
	case tally.NeedsImprovement:
		return warningTheme.Sprint(t)
	case tally.Good, tally.Excellent:
		return successTheme.Sprint(t)
	default:
		return defaultTheme.Sprint(t)
	}
}

// percent renders a 0..1 rate for display
func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// categoryTable renders the per-category breakdown as a bordered table in
// stable alphabetical order.
func categoryTable(data *tally.ReportInfo) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Category", "Total", "Passed", "Failed", "Skipped", "Pass Rate", "Avg Time"})
	for _, name := range data.SortedCategories() {
		category := data.Categories[name]
		t.AppendRow(table.Row{
			name,
			category.Total,
			category.Passed,
			category.Failed,
			category.Skipped,
			percent(category.PassRate),
			fmt.Sprintf("%.3fs", category.AvgDuration),
		})
	}
	return t.Render()
}
