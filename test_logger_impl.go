package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aegis-harvest/api-smoke-tests/framework"

	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// ConsoleTestLogger prints each top-level test as a numbered step, with the values it reports
// indented underneath.
type ConsoleTestLogger struct {
	Output               io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	steps                int
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	if len(id.Path) == 1 {
		c.steps++
		fmt.Fprintf(c.Output, "\n%d. Testing %s...\n", c.steps, id)
	}
}

func (c *ConsoleTestLogger) TestInfo(id framework.TestID, message string) {
	fmt.Fprintf(c.Output, "   %s\n", message)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for i, line := range strings.Split(err.Error(), "\n") {
		if i == 0 {
			failColor.Fprintf(c.Output, "   ERROR: %s\n", line)
		} else {
			fmt.Fprintf(c.Output, "     %s\n", line)
		}
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		failColor.Fprintf(c.Output, "   FAILED: %s\n", id)
	} else {
		passColor.Fprintf(c.Output, "   OK\n")
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Output, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if len(id.Path) == 1 {
		c.steps++
		fmt.Fprintf(c.Output, "\n%d. ", c.steps)
	} else {
		fmt.Fprint(c.Output, "   ")
	}
	if reason == "" {
		skipColor.Fprintf(c.Output, "SKIPPED: %s\n", id)
	} else {
		skipColor.Fprintf(c.Output, "SKIPPED: %s (%s)\n", id, reason)
	}
}
