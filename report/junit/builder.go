package junit

// NewTestsuite instantiate a Testsuite
func NewTestsuite(name string) *Testsuite {
	return &Testsuite{
		Name: name,
	}
}

// NewMarker instantiate a Marker
func NewMarker(message string) *Marker {
	return &Marker{
		Message: message,
	}
}

// NewTestcase instantiate a Testcase
func NewTestcase(name, classname, time string) *Testcase {
	return &Testcase{
		Name:      name,
		Classname: classname,
		Time:      time,
	}
}
