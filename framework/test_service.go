package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is what the service under test sent back for one request. JSON is only meaningful
// if the request returned no error.
type Response struct {
	StatusCode int
	Body       []byte
	JSON       ldvalue.Value
}

// Get sends a GET request to the given path, relative to the service's base URL.
func (h *TestHarness) Get(path string, logger Logger) (Response, error) {
	return h.Do("GET", path, nil, logger)
}

// Post sends a POST request. If body is nil, the request has no body; otherwise body is
// converted to JSON with json.Marshal.
func (h *TestHarness) Post(path string, body interface{}, logger Logger) (Response, error) {
	return h.Do("POST", path, body, logger)
}

// Do sends a request and expects a successful response with a JSON body.
//
// The returned error is a *ConnectionError if no response was received, a *StatusError if the
// status was not 2xx, or a *MalformedJSONError if the body could not be parsed. In the last two
// cases the returned Response still has the status and raw body.
func (h *TestHarness) Do(method, path string, body interface{}, logger Logger) (Response, error) {
	if logger == nil {
		logger = h.logger
	}

	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return Response{}, err
		}
	}

	url := h.baseURL + path
	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	if err != nil {
		return Response{}, err
	}
	if body == nil {
		req.Body = http.NoBody
		req.ContentLength = 0
	}
	for name, values := range h.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Printf("Request: %s", curlCommand(method, url, req.Header, data))
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Response{}, &ConnectionError{Method: method, URL: url, Err: err}
	}
	respData, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return Response{}, &ConnectionError{Method: method, URL: url, Err: err}
	}
	logger.Printf("Response: HTTP %d: %s", resp.StatusCode, string(respData))

	ret := Response{
		StatusCode: resp.StatusCode,
		Body:       respData,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ret, &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: respData}
	}
	if err := json.Unmarshal(respData, &ret.JSON); err != nil {
		return ret, &MalformedJSONError{URL: url, Body: respData, Err: err}
	}
	return ret, nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand describes a request as a command line that can be pasted into a shell to
// repeat it by hand.
func curlCommand(method, url string, headers http.Header, body []byte) string {
	var b commandBuilder
	b.add("curl", "-sS", "-X", method)
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range headers[name] {
			b.add("-H", name+": "+v)
		}
	}
	if len(body) != 0 {
		b.add("--data", string(body))
	}
	b.add(url)
	return b.String()
}

// ConnectionError means that no HTTP response was received, for instance because nothing was
// listening on the port or the request timed out.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatusError means the service responded with a status outside of the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	message := fmt.Sprintf("%s %s returned HTTP status %d", e.Method, e.URL, e.StatusCode)
	if len(e.Body) != 0 {
		message += ": " + truncate(string(e.Body), maxBodyInError)
	}
	return message
}

// MalformedJSONError means the response body was not valid JSON.
type MalformedJSONError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON response from %s (%s): %q", e.URL, e.Err, truncate(string(e.Body), maxBodyInError))
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

const maxBodyInError = 200

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
