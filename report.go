package tally

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/testtally/tally/result"
)

// MessagePlaceholder is rendered for failed cases whose marker carried no
// message text.
const MessagePlaceholder = "No error message available"

// TruncationMarker is appended to messages cut at the truncation limit.
const TruncationMarker = "... (truncated)"

// Summary aggregates counts and timing over a set of test cases. The same
// shape serves the overall report and each category of the breakdown.
type Summary struct {
	Total         int     `json:"total" yaml:"total"`
	Passed        int     `json:"passed" yaml:"passed"`
	Failed        int     `json:"failed" yaml:"failed"` // failed and errored cases combined
	Skipped       int     `json:"skipped" yaml:"skipped"`
	PassRate      float64 `json:"pass_rate" yaml:"pass_rate"`
	TotalDuration float64 `json:"total_duration" yaml:"total_duration"`
	AvgDuration   float64 `json:"average_duration" yaml:"average_duration"`
	Efficiency    float64 `json:"test_efficiency" yaml:"test_efficiency"` // passed cases per second of run time
}

// add counts a single case. Rates stay zero until finalize runs.
func (s *Summary) add(c *result.TestCase) {
	s.Total++
	switch c.Status {
	case result.Failed, result.Errored:
		s.Failed++
	case result.Skipped:
		s.Skipped++
	default:
		s.Passed++
	}
	s.TotalDuration += c.Duration
}

// finalize computes the derived rates once counting is done. Empty scopes
// keep every rate at zero instead of dividing by zero.
func (s *Summary) finalize() {
	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total)
		s.AvgDuration = s.TotalDuration / float64(s.Total)
	}
	if s.TotalDuration > 0 {
		s.Efficiency = float64(s.Passed) / s.TotalDuration
	}
}

// FailureRate returns the share of failed and errored cases in the scope.
func (s *Summary) FailureRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Failed) / float64(s.Total)
}

// Severity ranks an alert.
type Severity int

const (
	// SeverityInfo flags a noteworthy but harmless condition
	SeverityInfo Severity = iota
	// SeverityWarning flags a condition that deserves attention
	SeverityWarning
	// SeverityCritical flags a condition that requires action
	SeverityCritical
)

// String converts a Severity into its display name
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	}
	return "UNDEFINED"
}

// MarshalJSON is used convert a Severity object into a JSON representation
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML is used convert a Severity object into a YAML representation
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Alert types raised by the aggregator.
const (
	// AlertHighFailureRate marks a category failing beyond the configured rate
	AlertHighFailureRate = "HIGH_FAILURE_RATE"
	// AlertSlowTest marks a single case running beyond the configured duration
	AlertSlowTest = "SLOW_TEST"
)

// Alert flags a condition in the aggregated results that deserves attention.
type Alert struct {
	Type     string   `json:"type" yaml:"type"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// ReportInfo carries everything the report writers need.
type ReportInfo struct {
	ID           string              `json:"report_id" yaml:"report_id"`
	GeneratedAt  time.Time           `json:"generated_at" yaml:"generated_at"`
	Version      string              `json:"version,omitempty" yaml:"version,omitempty"`
	Sources      []string            `json:"sources" yaml:"sources"`
	Summary      *Summary            `json:"summary" yaml:"summary"`
	Grade        Grade               `json:"grade" yaml:"grade"`
	Categories   map[string]*Summary `json:"category_breakdown" yaml:"category_breakdown"`
	Cases        []*result.TestCase  `json:"detailed_results" yaml:"detailed_results"`
	Alerts       []*Alert            `json:"alerts" yaml:"alerts"`
	FailedCases  []*result.TestCase  `json:"-" yaml:"-"` // document order
	SlowestCases []*result.TestCase  `json:"-" yaml:"-"` // duration descending, stable

	// render knobs resolved from configuration
	TruncateLimit  int     `json:"-" yaml:"-"`
	MinSignificant float64 `json:"-" yaml:"-"`
}

// NewReportInfo instantiate a ReportInfo. The generation timestamp is the
// only non-deterministic field and is fixed here, never during rendering.
func NewReportInfo(sources []string, cases []*result.TestCase) *ReportInfo {
	now := time.Now()
	return &ReportInfo{
		ID:             uuid3(strings.Join(sources, "\n") + now.Format(time.RFC3339Nano)),
		GeneratedAt:    now,
		Sources:        sources,
		Summary:        &Summary{},
		Categories:     map[string]*Summary{},
		Cases:          cases,
		TruncateLimit:  500,
		MinSignificant: 0.001,
	}
}

// WithVersion defines the version of the tool the report was generated with.
func (r *ReportInfo) WithVersion(version string) *ReportInfo {
	r.Version = version
	return r
}

// SortedCategories returns the breakdown keys in stable alphabetical order.
func (r *ReportInfo) SortedCategories() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SignificantSlowest filters the slowest-tests selection down to entries
// above the significance floor for display.
func (r *ReportInfo) SignificantSlowest() []*result.TestCase {
	var significant []*result.TestCase
	for _, c := range r.SlowestCases {
		if c.Duration > r.MinSignificant {
			significant = append(significant, c)
		}
	}
	return significant
}

// FormatMessage returns the display form of a case's message: a fixed
// placeholder when the marker carried no text, truncated past the report's
// character limit otherwise. Escaping is left to the output format.
func (r *ReportInfo) FormatMessage(c *result.TestCase) string {
	if c.Message == "" {
		return MessagePlaceholder
	}
	return truncateMessage(c.Message, r.TruncateLimit)
}

// truncateMessage bounds a message to limit characters and marks the cut.
// The limit counts runes rather than bytes so multi-byte characters never
// split.
func truncateMessage(message string, limit int) string {
	if limit <= 0 {
		return message
	}
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit]) + TruncationMarker
}

func uuid3(value string) string {
	return uuid.NewMD5(uuid.Nil, []byte(value)).String()
}
