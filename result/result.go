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

// Package result holds the flat test case records produced by parsing a
// result document. A record is created once per parsed case node and is
// immutable afterwards.
package result

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status describes the outcome of a single test case.
type Status int

const (
	// Passed means the case completed without an outcome marker
	Passed Status = iota
	// Failed means the case carried a failure marker
	Failed
	// Errored means the case carried an error marker
	Errored
	// Skipped means the case was not executed
	Skipped
)

// String converts a Status into its wire name
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Errored:
		return "error"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// MarshalJSON is used convert a Status object into a JSON representation
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML is used convert a Status object into a YAML representation
func (s Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// DefaultClassName is recorded when a case node carries no owning class.
const DefaultClassName = "Unknown"

// DefaultCategory is the breakdown key for cases whose class name strips
// down to nothing.
const DefaultCategory = "General"

// TestCase is one test execution record from a result document.
type TestCase struct {
	Name      string  `json:"name" yaml:"name"`                           // test function or method name
	ClassName string  `json:"classname" yaml:"classname"`                 // dotted grouping path of the owning class
	Suite     string  `json:"suite" yaml:"suite"`                         // originating suite, kept for traceability
	Duration  float64 `json:"time" yaml:"time"`                           // execution time in seconds
	Status    Status  `json:"status" yaml:"status"`                       // normalized outcome
	Message   string  `json:"message,omitempty" yaml:"message,omitempty"` // marker message, empty for passed cases
}

// Location returns the fully qualified identifier of the case.
func (c TestCase) Location() string {
	return fmt.Sprintf("%s.%s", c.ClassName, c.Name)
}

// Category derives the breakdown key from the class name: the final dotted
// segment, with a case-insensitive "test" prefix or suffix stripped together
// with its adjoining underscore. Class names that strip down to nothing map
// to DefaultCategory. The derivation is heuristic and distinct class names
// may share a category.
func (c TestCase) Category() string {
	segment := c.ClassName
	if idx := strings.LastIndex(segment, "."); idx >= 0 {
		segment = segment[idx+1:]
	}
	lower := strings.ToLower(segment)
	switch {
	case strings.HasPrefix(lower, "test"):
		segment = strings.TrimPrefix(segment[len("test"):], "_")
	case strings.HasSuffix(lower, "test"):
		segment = strings.TrimSuffix(segment[:len(segment)-len("test")], "_")
	}
	if segment == "" {
		return DefaultCategory
	}
	return segment
}
