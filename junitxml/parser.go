package junitxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/testtally/tally/result"
)

// Parse decodes a JUnit XML document into a flat case list in document
// order. The root element may be a <testsuites> container or a single bare
// <testsuite>; any other root is rejected. Suite grouping is flattened but
// the originating suite name is retained on every record.
func Parse(r io.Reader) ([]*result.TestCase, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	root, err := rootName(data)
	if err != nil {
		return nil, err
	}
	switch root {
	case "testsuites":
		var doc Testsuites
		if err := xml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return flatten(doc.Suites), nil
	case "testsuite":
		var suite Testsuite
		if err := xml.Unmarshal(data, &suite); err != nil {
			return nil, err
		}
		return flatten([]Testsuite{suite}), nil
	}
	return nil, fmt.Errorf("unexpected root element <%s>", root)
}

// rootName returns the name of the document's first start element.
func rootName(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// flatten walks the suite tree in order and converts every case node.
func flatten(suites []Testsuite) []*result.TestCase {
	var cases []*result.TestCase
	for _, suite := range suites {
		for _, tc := range suite.Cases {
			cases = append(cases, convert(tc, suite.Name))
		}
		cases = append(cases, flatten(suite.Suites)...)
	}
	return cases
}

// convert normalizes one case node. Marker priority is fixed: a failure
// marker wins over an error marker, which wins over a skipped marker, so a
// malformed node carrying several markers resolves deterministically.
func convert(tc Testcase, suite string) *result.TestCase {
	c := &result.TestCase{
		Name:      tc.Name,
		ClassName: tc.ClassName,
		Suite:     suite,
		Duration:  parseDuration(tc.Time),
		Status:    result.Passed,
	}
	if c.ClassName == "" {
		c.ClassName = result.DefaultClassName
	}
	switch {
	case tc.Failure != nil:
		c.Status = result.Failed
		c.Message = markerMessage(tc.Failure)
	case tc.Error != nil:
		c.Status = result.Errored
		c.Message = markerMessage(tc.Error)
	case tc.Skipped != nil:
		c.Status = result.Skipped
		c.Message = markerMessage(tc.Skipped)
	}
	return c
}

// markerMessage prefers the message attribute and falls back to the element
// text.
func markerMessage(m *Marker) string {
	if m.Message != "" {
		return m.Message
	}
	return strings.TrimSpace(m.Content)
}

// parseDuration reads a time attribute, defaulting to zero when it is
// absent, unparsable or negative.
func parseDuration(value string) float64 {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
