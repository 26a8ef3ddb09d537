package tally_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/testtally/tally"
	"github.com/testtally/tally/result"
)

// buildDoc assembles a minimal testsuite document from case fragments.
func buildDoc(cases ...string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<testsuite name="pytest">` + strings.Join(cases, "\n") + `</testsuite>`
}

var _ = Describe("Aggregator", func() {
	var aggregator *tally.Aggregator
	BeforeEach(func() {
		aggregator = tally.NewAggregator(nil, nil)
	})

	Context("when processing input documents", func() {
		It("should report a missing input path", func() {
			err := aggregator.Process("no/such/results.xml")
			Expect(err).Should(HaveOccurred())

			var notFound *tally.InputNotFoundError
			Expect(errors.As(err, &notFound)).Should(BeTrue())
			Expect(notFound.Path).Should(Equal("no/such/results.xml"))
			Expect(aggregator.Cases()).Should(BeEmpty())
		})

		It("should reject a directory given as input", func() {
			dir, err := os.MkdirTemp("", "tally")
			Expect(err).ShouldNot(HaveOccurred())
			defer os.RemoveAll(dir)

			err = aggregator.Process(dir)
			var notFound *tally.InputNotFoundError
			Expect(errors.As(err, &notFound)).Should(BeTrue())
		})

		It("should report a malformed document with its source", func() {
			err := aggregator.ProcessReader(strings.NewReader("<testsuite"), "broken.xml")
			Expect(err).Should(HaveOccurred())

			var malformed *tally.MalformedReportError
			Expect(errors.As(err, &malformed)).Should(BeTrue())
			Expect(malformed.Source).Should(Equal("broken.xml"))
			Expect(err.Error()).Should(ContainSubstring("broken.xml"))
		})

		It("should parse a document from disk", func() {
			dir, err := os.MkdirTemp("", "tally")
			Expect(err).ShouldNot(HaveOccurred())
			defer os.RemoveAll(dir)

			path := filepath.Join(dir, "results.xml")
			doc := buildDoc(`<testcase classname="TestMath" name="test_add" time="0.001"/>`)
			Expect(os.WriteFile(path, []byte(doc), 0o600)).Should(Succeed())

			Expect(aggregator.Process(path)).Should(Succeed())
			Expect(aggregator.Cases()).Should(HaveLen(1))
			Expect(aggregator.Cases()[0].Name).Should(Equal("test_add"))
		})

		It("should accumulate cases from several documents in order", func() {
			first := buildDoc(`<testcase classname="TestAPI" name="test_get" time="0.1"/>`)
			second := buildDoc(`<testcase classname="TestAPI" name="test_put" time="0.2"/>`)

			Expect(aggregator.ProcessReader(strings.NewReader(first), "api_results.xml")).Should(Succeed())
			Expect(aggregator.ProcessReader(strings.NewReader(second), "more_results.xml")).Should(Succeed())

			cases := aggregator.Cases()
			Expect(cases).Should(HaveLen(2))
			Expect(cases[0].Name).Should(Equal("test_get"))
			Expect(cases[1].Name).Should(Equal("test_put"))

			report := aggregator.Report()
			Expect(report.Sources).Should(Equal([]string{"api_results.xml", "more_results.xml"}))
		})
	})

	Context("when aggregating statistics", func() {
		It("should count and grade a mixed suite", func() {
			cases := []string{
				`<testcase classname="TestAlgorithms" name="test_sort_1" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_sort_2" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_sort_3" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_sort_4" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_sort_5" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_sort_6" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_sort_7" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_sort_8" time="0.1"/>`,
				`<testcase classname="TestAlgorithms" name="test_search" time="0.1"><failure message="boom"/></testcase>`,
				`<testcase classname="TestAlgorithms" name="test_merge" time="0.1"><skipped message="later"/></testcase>`,
			}
			doc := buildDoc(cases...)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			report := aggregator.Report()
			Expect(report.Summary.Total).Should(Equal(10))
			Expect(report.Summary.Passed).Should(Equal(8))
			Expect(report.Summary.Failed).Should(Equal(1))
			Expect(report.Summary.Skipped).Should(Equal(1))
			Expect(report.Summary.PassRate).Should(BeNumerically("~", 0.8, 1e-9))
			Expect(report.Grade).Should(Equal(tally.Good))

			Expect(report.Categories).Should(HaveLen(1))
			Expect(report.Categories).Should(HaveKey("Algorithms"))
			Expect(report.Categories["Algorithms"].Total).Should(Equal(10))
			Expect(report.Categories["Algorithms"].Passed).Should(Equal(8))
		})

		It("should keep the overall counts and the breakdown consistent", func() {
			doc := buildDoc(
				`<testcase classname="TestAudio" name="test_play" time="1.5"/>`,
				`<testcase classname="TestAudio" name="test_stop" time="0.5"><error message="crash"/></testcase>`,
				`<testcase classname="TestVideo" name="test_render" time="2.0"/>`,
				`<testcase classname="TestVideo" name="test_seek"><skipped/></testcase>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			report := aggregator.Report()
			summary := report.Summary
			Expect(summary.Passed + summary.Failed + summary.Skipped).Should(Equal(summary.Total))

			var total, passed, failed, skipped int
			for _, category := range report.Categories {
				total += category.Total
				passed += category.Passed
				failed += category.Failed
				skipped += category.Skipped
			}
			Expect(total).Should(Equal(summary.Total))
			Expect(passed).Should(Equal(summary.Passed))
			Expect(failed).Should(Equal(summary.Failed))
			Expect(skipped).Should(Equal(summary.Skipped))
		})

		It("should compute timing statistics", func() {
			doc := buildDoc(
				`<testcase classname="TestIO" name="test_read" time="1.0"/>`,
				`<testcase classname="TestIO" name="test_write" time="3.0"/>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			summary := aggregator.Report().Summary
			Expect(summary.TotalDuration).Should(BeNumerically("~", 4.0, 1e-9))
			Expect(summary.AvgDuration).Should(BeNumerically("~", 2.0, 1e-9))
			Expect(summary.Efficiency).Should(BeNumerically("~", 0.5, 1e-9))
		})

		It("should count failures and errors together", func() {
			doc := buildDoc(
				`<testcase classname="TestNet" name="test_dial"><failure message="refused"/></testcase>`,
				`<testcase classname="TestNet" name="test_listen"><error message="panic"/></testcase>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			summary := aggregator.Report().Summary
			Expect(summary.Failed).Should(Equal(2))
			Expect(summary.Passed).Should(BeZero())
		})

		It("should produce an empty report without dividing by zero", func() {
			report := aggregator.Report()
			Expect(report.Summary.Total).Should(BeZero())
			Expect(report.Summary.PassRate).Should(BeZero())
			Expect(report.Summary.AvgDuration).Should(BeZero())
			Expect(report.Summary.Efficiency).Should(BeZero())
			Expect(report.Grade).Should(Equal(tally.Critical))
			Expect(report.Categories).Should(BeEmpty())
		})
	})

	Context("when selecting failed and slowest cases", func() {
		It("should keep failed cases in document order", func() {
			doc := buildDoc(
				`<testcase classname="TestA" name="test_1"><failure message="first"/></testcase>`,
				`<testcase classname="TestA" name="test_2"/>`,
				`<testcase classname="TestA" name="test_3"><error message="second"/></testcase>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			failed := aggregator.Report().FailedCases
			Expect(failed).Should(HaveLen(2))
			Expect(failed[0].Name).Should(Equal("test_1"))
			Expect(failed[0].Status).Should(Equal(result.Failed))
			Expect(failed[1].Name).Should(Equal("test_3"))
			Expect(failed[1].Status).Should(Equal(result.Errored))
		})

		It("should break duration ties by document order", func() {
			config := tally.NewConfig()
			config.Set(tally.SlowestCount, 2)
			aggregator = tally.NewAggregator(config, nil)

			doc := buildDoc(
				`<testcase classname="TestA" name="test_first" time="0.0"/>`,
				`<testcase classname="TestA" name="test_second" time="0.0"/>`,
				`<testcase classname="TestA" name="test_slow" time="5.0"/>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			slowest := aggregator.Report().SlowestCases
			Expect(slowest).Should(HaveLen(2))
			Expect(slowest[0].Name).Should(Equal("test_slow"))
			Expect(slowest[1].Name).Should(Equal("test_first"))
		})

		It("should bound the slowest list by the configured count", func() {
			var cases []string
			for _, name := range []string{"a", "b", "c", "d"} {
				cases = append(cases, `<testcase classname="TestA" name="test_`+name+`" time="1.0"/>`)
			}
			doc := buildDoc(cases...)

			config := tally.NewConfig()
			config.Set(tally.SlowestCount, 3)
			aggregator = tally.NewAggregator(config, nil)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			Expect(aggregator.Report().SlowestCases).Should(HaveLen(3))
		})

		It("should leave the case list order untouched by the slowest selection", func() {
			doc := buildDoc(
				`<testcase classname="TestA" name="test_one" time="3.0"/>`,
				`<testcase classname="TestA" name="test_two" time="1.0"/>`,
				`<testcase classname="TestA" name="test_three" time="2.0"/>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			report := aggregator.Report()
			Expect(report.SlowestCases[0].Name).Should(Equal("test_one"))
			Expect(report.Cases[0].Name).Should(Equal("test_one"))
			Expect(report.Cases[1].Name).Should(Equal("test_two"))
			Expect(report.Cases[2].Name).Should(Equal("test_three"))
		})
	})

	Context("when raising alerts", func() {
		It("should flag a category with a high failure rate", func() {
			doc := buildDoc(
				`<testcase classname="TestFlaky" name="test_1"><failure message="boom"/></testcase>`,
				`<testcase classname="TestFlaky" name="test_2"><failure message="boom"/></testcase>`,
				`<testcase classname="TestFlaky" name="test_3"/>`,
				`<testcase classname="TestFlaky" name="test_4"/>`,
				`<testcase classname="TestFlaky" name="test_5"/>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			alerts := aggregator.Report().Alerts
			Expect(alerts).Should(HaveLen(1))
			Expect(alerts[0].Type).Should(Equal(tally.AlertHighFailureRate))
			Expect(alerts[0].Severity).Should(Equal(tally.SeverityWarning))
			Expect(alerts[0].Message).Should(ContainSubstring("Flaky"))
		})

		It("should not flag categories below the sample floor", func() {
			doc := buildDoc(
				`<testcase classname="TestTiny" name="test_1"><failure message="boom"/></testcase>`,
				`<testcase classname="TestTiny" name="test_2"><failure message="boom"/></testcase>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			Expect(aggregator.Report().Alerts).Should(BeEmpty())
		})

		It("should flag single cases running beyond the duration ceiling", func() {
			config := tally.NewConfig()
			config.Set(tally.MaxCaseDuration, 1.0)
			aggregator = tally.NewAggregator(config, nil)

			doc := buildDoc(
				`<testcase classname="TestSlow" name="test_crawl" time="2.5"/>`,
				`<testcase classname="TestSlow" name="test_sprint" time="0.5"/>`,
			)
			Expect(aggregator.ProcessReader(strings.NewReader(doc), "results.xml")).Should(Succeed())

			alerts := aggregator.Report().Alerts
			Expect(alerts).Should(HaveLen(1))
			Expect(alerts[0].Type).Should(Equal(tally.AlertSlowTest))
			Expect(alerts[0].Severity).Should(Equal(tally.SeverityInfo))
			Expect(alerts[0].Message).Should(ContainSubstring("test_crawl"))
		})
	})
})
