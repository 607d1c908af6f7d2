package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aegis-harvest/api-smoke-tests/fakebackend"
	"github.com/aegis-harvest/api-smoke-tests/servicedef"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func runCommand(t *testing.T, stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"aegis-smoke-tests"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestAllTestsPass(t *testing.T) {
	server := httptest.NewServer(fakebackend.New())
	defer server.Close()

	code, out, _ := runCommand(t, "\n", "-url", server.URL)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Make sure the backend server is running on "+server.URL)
	assert.Contains(t, out, "Press Enter to start testing...")
	assert.Contains(t, out, "Testing Aegis Harvest API")
	assert.Contains(t, out, "1. Testing root endpoint...")
	assert.Contains(t, out, "   Temperature: 4°C")
	assert.Contains(t, out, "5. Testing reroute calculation...")
	assert.Contains(t, out, "All tests passed! ✅")
	assert.NotContains(t, out, "Some tests failed")
}

func TestBackendNotRunning(t *testing.T) {
	server := httptest.NewServer(fakebackend.New())
	url := server.URL
	server.Close()

	code, out, _ := runCommand(t, "", "-no-wait", "-url", url)

	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "Press Enter")
	assert.Contains(t, out, "1. Testing root endpoint...")
	assert.Contains(t, out, "   ERROR: GET "+url+"/ failed")
	assert.Contains(t, out, "2. SKIPPED: telemetry endpoint (not attempted because [root endpoint] failed)")
	assert.NotContains(t, out, "All tests passed")
	assert.Contains(t, out, "❌ Some tests failed. Check that:")
	assert.Contains(t, out, "   1. Backend server is running")
	assert.Contains(t, out, "   2. Port "+url[strings.LastIndex(url, ":")+1:]+" is accessible")
	assert.Contains(t, out, "   3. All dependencies are installed")
}

func TestPredictionWithoutDaysLeft(t *testing.T) {
	backend := fakebackend.New()
	backend.SetFault(servicedef.PathPrediction, fakebackend.Fault{OmitFields: []string{servicedef.FieldDaysLeft}})
	server := httptest.NewServer(backend)
	defer server.Close()

	code, out, _ := runCommand(t, "", "-no-wait", "-url", server.URL)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, `   ERROR: response is missing required field "days_left"`)
	assert.Contains(t, out, "   FAILED: prediction endpoint")
	assert.Contains(t, out, "4. SKIPPED: chaos mode toggle")
	assert.Contains(t, out, "5. SKIPPED: reroute calculation")
	assert.Contains(t, out, "Some tests failed")
	assert.False(t, backend.ChaosMode())
}

func TestDebugOutputForFailures(t *testing.T) {
	backend := fakebackend.New()
	backend.SetFault(servicedef.PathTelemetry, fakebackend.Fault{StatusCode: 500})
	server := httptest.NewServer(backend)
	defer server.Close()

	_, out, _ := runCommand(t, "", "-no-wait", "-debug", "-url", server.URL)

	assert.Contains(t, out, "    DEBUG [")
	assert.Contains(t, out, "Request: curl -sS -X GET")
	assert.Contains(t, out, "Response: HTTP 500")
}

func TestReportIsWritten(t *testing.T) {
	backend := fakebackend.New()
	backend.SetFault(servicedef.PathChaos, fakebackend.Fault{MalformedBody: true})
	server := httptest.NewServer(backend)
	defer server.Close()

	reportPath := filepath.Join(t.TempDir(), "report.yaml")
	code, _, stderr := runCommand(t, "", "-no-wait", "-url", server.URL, "-report", reportPath)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report struct {
		RunID   string `yaml:"run_id"`
		BaseURL string `yaml:"base_url"`
		Passed  bool   `yaml:"passed"`
		Steps   []struct {
			Name       string                 `yaml:"name"`
			Result     string                 `yaml:"result"`
			StatusCode int                    `yaml:"status_code"`
			Payload    map[string]interface{} `yaml:"payload"`
			Errors     []string               `yaml:"errors"`
		} `yaml:"steps"`
	}
	require.NoError(t, yaml.Unmarshal(data, &report))

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, server.URL, report.BaseURL)
	assert.False(t, report.Passed)
	require.Len(t, report.Steps, 5)
	assert.Equal(t, "telemetry endpoint", report.Steps[1].Name)
	assert.Equal(t, stepPassed, report.Steps[1].Result)
	assert.Equal(t, 200, report.Steps[1].StatusCode)
	assert.EqualValues(t, 4, report.Steps[1].Payload["temperature"])
	assert.Equal(t, stepFailed, report.Steps[3].Result)
	require.Len(t, report.Steps[3].Errors, 1)
	assert.Contains(t, report.Steps[3].Errors[0], "malformed JSON response")
	assert.Equal(t, stepNotAttempted, report.Steps[4].Result)

	for _, r := range backend.Requests() {
		assert.Equal(t, report.RunID, r.RunID)
	}
}

func TestInvalidParameters(t *testing.T) {
	for _, args := range [][]string{
		{"-bogus"},
		{"-url", ""},
		{"-url", "localhost:8000"},
		{"-timeout", "-1s"},
		{"extra"},
	} {
		code, out, stderr := runCommand(t, "", args...)
		assert.Equal(t, 1, code, "%v", args)
		assert.NotEmpty(t, stderr, "%v", args)
		assert.Empty(t, out, "%v", args)
	}
}

func TestWaitForOperator(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, waitForOperator(strings.NewReader("\nleftover"), &out, "http://localhost:8000"))
	assert.Equal(t,
		"\nMake sure the backend server is running on http://localhost:8000\nPress Enter to start testing...\n",
		out.String())

	require.NoError(t, waitForOperator(strings.NewReader(""), &out, "http://localhost:8000"))
}
