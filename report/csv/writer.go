package csv

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/testtally/tally"
)

// WriteReport write a report in csv format to the output writer, one row
// per test case
func WriteReport(w io.Writer, data *tally.ReportInfo) error {
	out := csv.NewWriter(w)
	defer out.Flush()
	for _, c := range data.Cases {
		err := out.Write([]string{
			c.Suite,
			c.ClassName,
			c.Name,
			c.Category(),
			c.Status.String(),
			strconv.FormatFloat(c.Duration, 'f', -1, 64),
			c.Message,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
