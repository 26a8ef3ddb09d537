package junit

import (
	"strconv"

	"github.com/testtally/tally"
	"github.com/testtally/tally/result"
)

// GenerateReport converts an aggregated report back into a normalized JUnit
// XML tree: cases grouped by originating suite, counts and times recomputed
// from the case list.
func GenerateReport(data *tally.ReportInfo) Report {
	var xmlReport Report
	suites := map[string]int{}
	durations := map[string]float64{}
	var total float64

	for _, c := range data.Cases {
		index, ok := suites[c.Suite]
		if !ok {
			xmlReport.Testsuites = append(xmlReport.Testsuites, NewTestsuite(c.Suite))
			index = len(xmlReport.Testsuites) - 1
			suites[c.Suite] = index
		}
		suite := xmlReport.Testsuites[index]

		testcase := NewTestcase(c.Name, c.ClassName, formatSeconds(c.Duration))
		switch c.Status {
		case result.Failed:
			testcase.Failure = NewMarker(c.Message)
			suite.Failures++
			xmlReport.Failures++
		case result.Errored:
			testcase.Error = NewMarker(c.Message)
			suite.Errors++
			xmlReport.Errors++
		case result.Skipped:
			testcase.Skipped = NewMarker(c.Message)
			suite.Skipped++
			xmlReport.Skipped++
		}
		suite.Tests++
		xmlReport.Tests++
		suite.Testcases = append(suite.Testcases, testcase)

		durations[c.Suite] += c.Duration
		total += c.Duration
	}

	for _, suite := range xmlReport.Testsuites {
		suite.Time = formatSeconds(durations[suite.Name])
	}
	xmlReport.Time = formatSeconds(total)

	return xmlReport
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
