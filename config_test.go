package tally_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/testtally/tally"
)

var _ = Describe("Configuration", func() {
	var configuration tally.Config
	BeforeEach(func() {
		configuration = tally.NewConfig()
	})

	Context("when loading from disk", func() {
		It("should be possible to load configuration from a file", func() {
			json := `{"slowest_count": 5}`
			buffer := bytes.NewBufferString(json)
			nread, err := configuration.ReadFrom(buffer)
			Expect(nread).Should(Equal(int64(len(json))))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(configuration.IntValue(tally.SlowestCount, 10)).Should(Equal(5))
		})

		It("should keep defaults for options the file does not mention", func() {
			json := `{"slowest_count": 5}`
			_, err := configuration.ReadFrom(strings.NewReader(json))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(configuration.IntValue(tally.TruncateLimit, 0)).Should(Equal(500))
		})

		It("should return an error if configuration file is invalid", func() {
			var err error
			invalidBuffer := bytes.NewBuffer([]byte{0xc0, 0xff, 0xee})
			_, err = configuration.ReadFrom(invalidBuffer)
			Expect(err).Should(HaveOccurred())

			emptyBuffer := bytes.NewBuffer([]byte{})
			_, err = configuration.ReadFrom(emptyBuffer)
			Expect(err).Should(HaveOccurred())
		})
	})

	Context("when saving to disk", func() {
		It("should write the default configuration with sorted keys", func() {
			expected := `{"max_case_duration":300,"max_failure_rate":0.2,"min_alert_sample":5,"min_significant_duration":0.001,"slowest_count":10,"truncate_limit":500}`
			buffer := bytes.NewBuffer([]byte{})
			nbytes, err := configuration.WriteTo(buffer)
			Expect(int(nbytes)).Should(Equal(len(expected)))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(buffer.String()).Should(Equal(expected))
		})
	})

	Context("when reading and writing options", func() {
		It("should be possible to get a configured option", func() {
			configuration.Set(tally.SlowestCount, 3)
			value, err := configuration.Get(tally.SlowestCount)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(value).Should(Equal(3))
		})

		It("should return an error for an unknown option", func() {
			_, err := configuration.Get(tally.Option("no_such_option"))
			Expect(err).Should(HaveOccurred())
		})

		It("should convert numeric types when reading values", func() {
			configuration.Set(tally.SlowestCount, 7.0)
			Expect(configuration.IntValue(tally.SlowestCount, 10)).Should(Equal(7))

			configuration.Set(tally.MaxFailureRate, 1)
			Expect(configuration.FloatValue(tally.MaxFailureRate, 0.2)).Should(Equal(1.0))
		})

		It("should fall back on unusable values", func() {
			configuration.Set(tally.SlowestCount, "ten")
			Expect(configuration.IntValue(tally.SlowestCount, 10)).Should(Equal(10))
			Expect(configuration.FloatValue(tally.Option("missing"), 0.5)).Should(Equal(0.5))
		})
	})

	Context("when deriving grade thresholds", func() {
		It("should use the default tiers without a grades section", func() {
			thresholds := configuration.Thresholds()
			Expect(thresholds).Should(Equal(tally.DefaultThresholds()))
		})

		It("should apply overrides from the grades section", func() {
			config := `{"grades": {"excellent": 0.99, "good": 0.9}}`
			_, err := configuration.ReadFrom(strings.NewReader(config))
			Expect(err).ShouldNot(HaveOccurred())

			thresholds := configuration.Thresholds()
			Expect(thresholds.Excellent).Should(Equal(0.99))
			Expect(thresholds.Good).Should(Equal(0.9))
			Expect(thresholds.NeedsImprovement).Should(Equal(0.6))
		})
	})
})
