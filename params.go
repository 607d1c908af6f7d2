package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/aegis-harvest/api-smoke-tests/servicedef"
)

type commandParams struct {
	serviceURL     string
	requestTimeout time.Duration
	noWait         bool
	reportPath     string
	debug          bool
	debugAll       bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.serviceURL, "url", servicedef.DefaultBaseURL, "base URL of the Aegis Harvest backend")
	fs.DurationVar(&c.requestTimeout, "timeout", 0, "timeout for each request (0 means no timeout)")
	fs.BoolVar(&c.noWait, "no-wait", false, "start immediately instead of waiting for Enter")
	fs.StringVar(&c.reportPath, "report", "", "write a YAML summary of the run to this file")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(errOut, "-url cannot be empty")
		fs.Usage()
		return false
	}
	if c.requestTimeout < 0 {
		fmt.Fprintln(errOut, "-timeout cannot be negative")
		fs.Usage()
		return false
	}
	return true
}
