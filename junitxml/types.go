// Package junitxml decodes pytest style JUnit XML result documents into the
// flat case records the aggregator works on.
package junitxml

import "encoding/xml"

// Testsuites is the <testsuites> container element.
type Testsuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Name    string      `xml:"name,attr"`
	Suites  []Testsuite `xml:"testsuite"`
}

// Testsuite is one <testsuite> grouping of case nodes. Suites may nest.
type Testsuite struct {
	XMLName xml.Name    `xml:"testsuite"`
	Name    string      `xml:"name,attr"`
	Suites  []Testsuite `xml:"testsuite"`
	Cases   []Testcase  `xml:"testcase"`
}

// Testcase is one <testcase> node. The time attribute is kept as a string
// so an unparsable value can default instead of failing the whole document.
// At most one of Failure, Error and Skipped is expected; conflicting
// markers are resolved by Parse in a fixed priority order.
type Testcase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      string   `xml:"time,attr"`
	Failure   *Marker  `xml:"failure"`
	Error     *Marker  `xml:"error"`
	Skipped   *Marker  `xml:"skipped"`
}

// Marker is a failure, error or skipped child element of a testcase.
type Marker struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}
