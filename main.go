package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aegis-harvest/api-smoke-tests/apitests"
	"github.com/aegis-harvest/api-smoke-tests/framework"
	"github.com/aegis-harvest/api-smoke-tests/servicedef"

	"github.com/google/uuid"
)

var separator = strings.Repeat("=", 60)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run returns 0 whenever the test suite was able to run, whether or not it passed; the outcome
// is only reported on the console.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var params commandParams
	if !params.Read(args, stderr) {
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(stdout, "", log.LstdFlags)
	}

	runID := uuid.NewString()
	headers := make(http.Header)
	headers.Set(servicedef.RunIDHeader, runID)

	harness, err := framework.NewTestHarness(
		params.serviceURL,
		params.requestTimeout,
		headers,
		mainDebugLogger,
	)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid parameters: %s\n", err)
		return 1
	}

	if !params.noWait {
		if err := waitForOperator(stdin, stdout, harness.BaseURL()); err != nil {
			fmt.Fprintf(stderr, "Could not read from standard input: %s\n", err)
			return 1
		}
	}

	fmt.Fprintln(stdout, separator)
	fmt.Fprintln(stdout, "Testing Aegis Harvest API")
	fmt.Fprintf(stdout, "Backend: %s (run %s)\n", harness.BaseURL(), runID)
	fmt.Fprintln(stdout, separator)

	testLogger := &ConsoleTestLogger{
		Output:               stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	startTime := time.Now()
	results := apitests.RunTestSuite(harness, testLogger)

	printResults(stdout, results, harness.Port())

	if params.reportPath != "" {
		report := buildReport(runID, harness.BaseURL(), startTime, results)
		if err := writeReport(params.reportPath, report); err != nil {
			fmt.Fprintf(stderr, "Could not write report: %s\n", err)
		}
	}
	return 0
}

// waitForOperator blocks until a line is read, so the operator can start the backend first.
// End of input counts as confirmation.
func waitForOperator(stdin io.Reader, stdout io.Writer, baseURL string) error {
	fmt.Fprintf(stdout, "\nMake sure the backend server is running on %s\n", baseURL)
	fmt.Fprintln(stdout, "Press Enter to start testing...")
	_, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func printResults(w io.Writer, results framework.Results, port string) {
	fmt.Fprintln(w)
	if results.OK() {
		fmt.Fprintln(w, separator)
		passColor.Fprintln(w, "All tests passed! ✅")
		fmt.Fprintln(w, separator)
		return
	}
	failColor.Fprintln(w, "❌ Some tests failed. Check that:")
	fmt.Fprintln(w, "   1. Backend server is running")
	fmt.Fprintf(w, "   2. Port %s is accessible\n", port)
	fmt.Fprintln(w, "   3. All dependencies are installed")
}
