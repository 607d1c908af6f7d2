package framework

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TestHarness holds everything needed to talk to the service under test: its base URL, the
// HTTP client, and any headers that should go out with every request.
type TestHarness struct {
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	logger     Logger
}

// NewTestHarness creates a TestHarness for the service at baseURL. A requestTimeout of zero
// means requests are never timed out by the harness. Every request will carry the headers in
// defaultHeaders.
//
// This does not contact the service; an unreachable service is reported by the first request.
func NewTestHarness(
	baseURL string,
	requestTimeout time.Duration,
	defaultHeaders http.Header,
	debugLogger Logger,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid service URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid service URL %q: no host", baseURL)
	}
	if requestTimeout < 0 {
		return nil, fmt.Errorf("request timeout cannot be negative (got %s)", requestTimeout)
	}

	debugLogger.Printf("Service URL is %s, request timeout is %s", baseURL, requestTimeout)
	return &TestHarness{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		headers:    defaultHeaders.Clone(),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     debugLogger,
	}, nil
}

// BaseURL returns the service URL with no trailing slash.
func (h *TestHarness) BaseURL() string {
	return h.baseURL
}

// Port returns the port the service is expected to listen on, using the scheme default if the
// URL did not specify one.
func (h *TestHarness) Port() string {
	u, err := url.Parse(h.baseURL)
	if err != nil {
		return ""
	}
	if p := u.Port(); p != "" {
		return p
	}
	if u.Scheme == "https" {
		return "443"
	}
	return "80"
}
