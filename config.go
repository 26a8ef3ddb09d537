package tally

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Option is a configuration key understood by Config.
type Option string

const (
	// SlowestCount bounds the slowest-tests list of a report.
	SlowestCount Option = "slowest_count"
	// TruncateLimit is the maximum rendered message length in characters.
	TruncateLimit Option = "truncate_limit"
	// MinSignificantDuration is the display floor for the slowest-tests
	// section, in seconds.
	MinSignificantDuration Option = "min_significant_duration"
	// MaxFailureRate is the per-category failure rate above which an alert
	// is raised.
	MaxFailureRate Option = "max_failure_rate"
	// MaxCaseDuration is the single-case duration above which an alert is
	// raised, in seconds.
	MaxCaseDuration Option = "max_case_duration"
	// MinAlertSample is the smallest category considered for failure-rate
	// alerts.
	MinAlertSample Option = "min_alert_sample"
	// Grades is the section holding classification threshold overrides.
	Grades Option = "grades"
)

// Config is used to provide configuration and customization to the
// aggregator and the report writers.
type Config map[string]interface{}

// NewConfig initializes a new configuration instance seeded with the
// default thresholds. The configuration data then needs to be loaded via
// c.ReadFrom(strings.NewReader("config data")) or from a *os.File.
func NewConfig() Config {
	return Config{
		string(SlowestCount):           10,
		string(TruncateLimit):          500,
		string(MinSignificantDuration): 0.001,
		string(MaxFailureRate):         0.20,
		string(MaxCaseDuration):        300.0,
		string(MinAlertSample):         5,
	}
}

// ReadFrom implements the io.ReaderFrom interface. This should be used with
// io.Reader to load configuration from a file or from a string etc.
func (c Config) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	if err = json.Unmarshal(data, &c); err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), nil
}

// WriteTo implements the io.WriterTo interface. This should be used to save
// or print out the configuration information.
func (c Config) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return int64(len(data)), err
	}
	return io.Copy(w, bytes.NewReader(data))
}

// Get returns the configuration value for the given option.
func (c Config) Get(option Option) (interface{}, error) {
	value, found := c[string(option)]
	if !found {
		return nil, fmt.Errorf("%q is not in the configuration", option)
	}
	return value, nil
}

// Set stores a value for the given option.
func (c Config) Set(option Option, value interface{}) {
	c[string(option)] = value
}

// IntValue returns an integer option, falling back when the option is unset
// or carries an unusable type. JSON numbers decode as float64 and are
// accepted here.
func (c Config) IntValue(option Option, fallback int) int {
	switch value := c[string(option)].(type) {
	case int:
		return value
	case float64:
		return int(value)
	}
	return fallback
}

// FloatValue returns a float option, falling back when the option is unset
// or carries an unusable type.
func (c Config) FloatValue(option Option, fallback float64) float64 {
	switch value := c[string(option)].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	}
	return fallback
}

// Thresholds assembles the grade tiers, applying overrides from the grades
// section when present.
func (c Config) Thresholds() Thresholds {
	thresholds := DefaultThresholds()
	section, ok := c[string(Grades)].(map[string]interface{})
	if !ok {
		return thresholds
	}
	if value, ok := section["excellent"].(float64); ok {
		thresholds.Excellent = value
	}
	if value, ok := section["good"].(float64); ok {
		thresholds.Good = value
	}
	if value, ok := section["needs_improvement"].(float64); ok {
		thresholds.NeedsImprovement = value
	}
	return thresholds
}
