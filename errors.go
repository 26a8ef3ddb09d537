package tally

import "fmt"

// InputNotFoundError is returned when an input document path does not exist
// or is not a regular file.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input report %q not found", e.Path)
}

// MalformedReportError is returned when an input document exists but cannot
// be parsed into the expected suite/case shape.
type MalformedReportError struct {
	Source string
	Err    error
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("malformed report %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedReportError) Unwrap() error {
	return e.Err
}

// RenderError is returned when rendering the report or writing it to disk
// fails. No partial output is left behind when it is raised.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("no report generated for %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying render or write error.
func (e *RenderError) Unwrap() error {
	return e.Err
}
