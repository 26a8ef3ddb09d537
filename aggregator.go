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

// Package tally aggregates pytest style JUnit XML result documents into
// summary and category statistics and hands them to the report writers.
package tally

import (
	"io"
	"log"
	"os"
	"sort"

	"github.com/testtally/tally/junitxml"
	"github.com/testtally/tally/result"
)

// The Aggregator object is the center of the pipeline. Processing is
// single-threaded and batch oriented: input documents are parsed in
// sequence into one flat case list, then Report derives the statistics in
// a single pass. All state lives on the instance.
type Aggregator struct {
	cases   []*result.TestCase
	sources []string
	config  Config
	logger  *log.Logger
}

// NewAggregator builds a new aggregator. A nil config falls back to the
// defaults and a nil logger discards log messages.
func NewAggregator(conf Config, logger *log.Logger) *Aggregator {
	if conf == nil {
		conf = NewConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Aggregator{
		config: conf,
		logger: logger,
	}
}

// Process reads and parses each input document, accumulating the parsed
// cases in document order. A missing path yields an InputNotFoundError, an
// unparsable document a MalformedReportError; the first failure aborts the
// run.
func (t *Aggregator) Process(paths ...string) error {
	for _, path := range paths {
		if err := t.processFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (t *Aggregator) processFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return &InputNotFoundError{Path: path}
	}
	file, err := os.Open(path)
	if err != nil {
		return &InputNotFoundError{Path: path}
	}
	defer file.Close()
	return t.ProcessReader(file, path)
}

// ProcessReader parses a result document from an in-memory source. The
// source identifier serves error reporting and the report footer only.
func (t *Aggregator) ProcessReader(r io.Reader, source string) error {
	t.logger.Printf("parsing test results from %s", source)
	cases, err := junitxml.Parse(r)
	if err != nil {
		return &MalformedReportError{Source: source, Err: err}
	}
	t.cases = append(t.cases, cases...)
	t.sources = append(t.sources, source)
	t.logger.Printf("collected %d cases from %s", len(cases), source)
	return nil
}

// Cases returns the accumulated case list in document order.
func (t *Aggregator) Cases() []*result.TestCase {
	return t.cases
}

// Report aggregates everything processed so far into a ReportInfo for the
// report writers and programmatic callers.
func (t *Aggregator) Report() *ReportInfo {
	info := NewReportInfo(t.sources, t.cases)
	info.Summary, info.Categories = aggregate(t.cases)
	info.Grade = Classify(info.Summary.PassRate, t.config.Thresholds())
	info.FailedCases = failedCases(t.cases)
	info.SlowestCases = slowestCases(t.cases, t.config.IntValue(SlowestCount, 10))
	info.TruncateLimit = t.config.IntValue(TruncateLimit, 500)
	info.MinSignificant = t.config.FloatValue(MinSignificantDuration, 0.001)
	info.Alerts = t.alerts(info)
	t.logger.Printf("aggregated %d cases: %d passed, %d failed, %d skipped",
		info.Summary.Total, info.Summary.Passed, info.Summary.Failed, info.Summary.Skipped)
	return info
}

// aggregate computes the overall summary and the category breakdown in one
// pass over the case list.
func aggregate(cases []*result.TestCase) (*Summary, map[string]*Summary) {
	overall := &Summary{}
	categories := map[string]*Summary{}
	for _, c := range cases {
		overall.add(c)
		key := c.Category()
		category, ok := categories[key]
		if !ok {
			category = &Summary{}
			categories[key] = category
		}
		category.add(c)
	}
	overall.finalize()
	for _, category := range categories {
		category.finalize()
	}
	return overall, categories
}

// failedCases selects the failed and errored cases, preserving document
// order.
func failedCases(cases []*result.TestCase) []*result.TestCase {
	var failed []*result.TestCase
	for _, c := range cases {
		if c.Status == result.Failed || c.Status == result.Errored {
			failed = append(failed, c)
		}
	}
	return failed
}

// slowestCases selects the n slowest cases. The sort is stable so cases
// with equal durations keep their document order.
func slowestCases(cases []*result.TestCase, n int) []*result.TestCase {
	if n <= 0 {
		return nil
	}
	sorted := make([]*result.TestCase, len(cases))
	copy(sorted, cases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Duration > sorted[j].Duration
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
