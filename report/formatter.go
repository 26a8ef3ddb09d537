// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"io"

	"github.com/testtally/tally"
	"github.com/testtally/tally/report/csv"
	"github.com/testtally/tally/report/html"
	"github.com/testtally/tally/report/json"
	"github.com/testtally/tally/report/junit"
	"github.com/testtally/tally/report/text"
	"github.com/testtally/tally/report/yaml"
)

// Formats lists the accepted format names in the order they are documented.
var Formats = []string{"html", "json", "yaml", "csv", "junit-xml", "text"}

// Extension returns the file extension conventionally used for a format.
func Extension(format string) string {
	switch format {
	case "json":
		return "json"
	case "yaml":
		return "yaml"
	case "csv":
		return "csv"
	case "junit-xml":
		return "xml"
	case "text":
		return "txt"
	default:
		return "html"
	}
}

// CreateReport generates a report for the supplied data in the specified
// format. The formats currently accepted are: html, json, yaml, csv,
// junit-xml and text; anything else falls back to html.
func CreateReport(w io.Writer, format string, enableColor bool, data *tally.ReportInfo) error {
	var err error
	switch format {
	case "json":
		err = json.WriteReport(w, data)
	case "yaml":
		err = yaml.WriteReport(w, data)
	case "csv":
		err = csv.WriteReport(w, data)
	case "junit-xml":
		err = junit.WriteReport(w, data)
	case "text":
		err = text.WriteReport(w, data, enableColor)
	case "html":
		err = html.WriteReport(w, data)
	default:
		err = html.WriteReport(w, data)
	}
	return err
}
