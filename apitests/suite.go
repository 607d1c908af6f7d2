package apitests

import (
	"github.com/aegis-harvest/api-smoke-tests/framework"
)

// RunTestSuite runs every smoke test against the backend, in order, stopping at the first
// failure.
func RunTestSuite(
	harness *framework.TestHarness,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(testLogger, func(c *framework.Context) {
		t := newTestScope(c, harness)

		t.Run("root endpoint", DoRootTests)
		t.Run("telemetry endpoint", DoTelemetryTests)
		t.Run("prediction endpoint", DoPredictionTests)
		t.Run("chaos mode toggle", DoChaosTests)
		t.Run("reroute calculation", DoRerouteTests)
	})
}
