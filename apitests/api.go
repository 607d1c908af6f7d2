package apitests

import (
	"github.com/aegis-harvest/api-smoke-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// T represents a test or subtest in the smoke test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. Those features are provided by our lower-level framework
// package.
//
// It also knows how to talk to the backend. The Require methods cause the test to fail and
// immediately exit if the backend does not respond as expected, so that a test reads as a
// straight sequence of requests and field lookups.
type T struct {
	context *framework.Context
	harness *framework.TestHarness
}

func newTestScope(context *framework.Context, harness *framework.TestHarness) *T {
	return &T{
		context: context,
		harness: harness,
	}
}

// FailNow causes the test to exit immediately.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Info shows a value to the operator.
func (t *T) Info(format string, args ...interface{}) {
	t.context.Info(format, args...)
}

func (t *T) requireNoError(err error) {
	if err != nil {
		t.context.Fail(err)
		t.FailNow()
	}
}

// RequireGet sends a GET request to the backend and returns the decoded JSON body.
//
// The test fails and immediately exits if there is no response, if the status is not 2xx, or
// if the body is not JSON.
func (t *T) RequireGet(path string) ldvalue.Value {
	return t.requireResponse("GET", path, nil)
}

// RequirePost is the same as RequireGet, but sends a POST. If body is nil, the request has no
// body.
func (t *T) RequirePost(path string, body interface{}) ldvalue.Value {
	return t.requireResponse("POST", path, body)
}

func (t *T) requireResponse(method, path string, body interface{}) ldvalue.Value {
	resp, err := t.harness.Do(method, path, body, framework.LoggerWithPrefix(t.context.DebugLogger(), "[backend] "))
	if resp.StatusCode != 0 {
		t.Info("Status: %d", resp.StatusCode)
	}
	t.context.RecordResponse(resp.StatusCode, resp.JSON)
	t.requireNoError(err)
	return resp.JSON
}

// RequireField returns a property of a JSON object, failing the test if the property does not
// exist or is null.
func (t *T) RequireField(payload ldvalue.Value, name string) ldvalue.Value {
	value, err := nonNullField(payload, name)
	t.requireNoError(err)
	return value
}

// RequireNumber returns a numeric property of a JSON object, failing the test if the property
// does not exist or is not a number.
func (t *T) RequireNumber(payload ldvalue.Value, name string) float64 {
	value, err := numberField(payload, name)
	t.requireNoError(err)
	return value
}

// RequireString returns a string property of a JSON object, failing the test if the property
// does not exist or is not a string.
func (t *T) RequireString(payload ldvalue.Value, name string) string {
	value, err := stringField(payload, name)
	t.requireNoError(err)
	return value
}

// RequireBoolLike returns a boolean property of a JSON object. The numbers 0 and 1 are also
// accepted, since some backends serialize flags that way.
func (t *T) RequireBoolLike(payload ldvalue.Value, name string) bool {
	value, err := boolLikeField(payload, name)
	t.requireNoError(err)
	return value
}
