package framework

import (
	"errors"
	"fmt"
	"runtime/debug"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type environment struct {
	results    Results
	testLogger TestLogger
	halted     bool
	haltedBy   TestID
}

// Context is the state of one test or subtest. It plays the same role as *testing.T, outside
// of the Go test runner.
//
// Tests run strictly in the order in which Run is called. As soon as any test fails, the run
// is halted: every later call to Run is recorded as not attempted and its action is never
// called.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	statusCode  int
	payload     ldvalue.Value
}

func Run(
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if c.failed && !c.env.halted {
			c.env.halted = true
			c.env.haltedBy = c.id
		}
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{
			TestID:     c.id,
			Errors:     c.errors,
			StatusCode: c.statusCode,
			Payload:    c.payload,
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest, unless an earlier test has already failed.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	if c.env.halted {
		c.env.results.NotAttempted = append(c.env.results.NotAttempted, id)
		c.env.testLogger.TestSkipped(id, fmt.Sprintf("not attempted because [%s] failed", c.env.haltedBy))
		return
	}

	c.env.testLogger.TestStarted(id)
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Fail records err as a failure of this test. It does not cause an immediate exit.
func (c *Context) Fail(err error) {
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Info shows a line of output to the operator.
func (c *Context) Info(message string, args ...interface{}) {
	c.env.testLogger.TestInfo(c.id, fmt.Sprintf(message, args...))
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// RecordResponse attaches the observed HTTP status and decoded body to this test's result.
func (c *Context) RecordResponse(statusCode int, payload ldvalue.Value) {
	c.statusCode = statusCode
	c.payload = payload
}
