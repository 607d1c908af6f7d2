package framework

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Results is the ordered summary of a test run.
type Results struct {
	Tests        []TestResult
	Failures     []TestResult
	NotAttempted []TestID
}

// TestResult is the outcome of one test. StatusCode and Payload are only set if the test
// recorded a response from the backend.
type TestResult struct {
	TestID     TestID
	Errors     []error
	StatusCode int
	Payload    ldvalue.Value
}

// OK is true if every test that was started succeeded and none were abandoned because of
// an earlier failure.
func (r Results) OK() bool {
	return len(r.Failures) == 0 && len(r.NotAttempted) == 0
}

func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
