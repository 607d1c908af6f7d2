package fakebackend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aegis-harvest/api-smoke-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func doRequest(t *testing.T, b *Backend, method, path, body string) (int, ldvalue.Value, string) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(servicedef.RunIDHeader, "run-x")
	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, req)
	return rec.Code, ldvalue.Parse(rec.Body.Bytes()), rec.Body.String()
}

func TestRoot(t *testing.T) {
	status, payload, _ := doRequest(t, New(), "GET", "/", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "running", payload.GetByKey("status").StringValue())
}

func TestTelemetryDefaults(t *testing.T) {
	status, payload, _ := doRequest(t, New(), "GET", servicedef.PathTelemetry, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, 4.0, payload.GetByKey(servicedef.FieldTemperature).Float64Value())
	assert.Equal(t, 60.0, payload.GetByKey(servicedef.FieldHumidity).Float64Value())
	assert.Equal(t, 0.2, payload.GetByKey(servicedef.FieldVibration).Float64Value())
	assert.Equal(t, 200.0, payload.GetByKey(servicedef.FieldDistance).Float64Value())
	assert.True(t, payload.GetByKey(servicedef.FieldTimestamp).IsString())
}

func TestChaosToggle(t *testing.T) {
	b := New()

	_, payload, _ := doRequest(t, b, "GET", servicedef.PathChaosStatus, "")
	assert.False(t, payload.GetByKey(servicedef.FieldChaosMode).BoolValue())

	status, payload, _ := doRequest(t, b, "POST", servicedef.PathChaos, "")
	assert.Equal(t, 200, status)
	assert.True(t, payload.GetByKey(servicedef.FieldChaosMode).BoolValue())
	assert.Equal(t, chaosDaysLeft, payload.GetByKey(servicedef.FieldDaysLeft).Float64Value())
	assert.True(t, b.ChaosMode())

	_, payload, _ = doRequest(t, b, "GET", servicedef.PathPrediction, "")
	assert.Equal(t, servicedef.StatusCritical, payload.GetByKey(servicedef.FieldStatus).StringValue())

	_, payload, _ = doRequest(t, b, "POST", servicedef.PathChaos, "")
	assert.False(t, payload.GetByKey(servicedef.FieldChaosMode).BoolValue())
	assert.Equal(t, normalDaysLeft, payload.GetByKey(servicedef.FieldDaysLeft).Float64Value())
	assert.False(t, b.ChaosMode())
}

func TestWrongMethodIsRejected(t *testing.T) {
	status, _, _ := doRequest(t, New(), "GET", servicedef.PathChaos, "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestReroute(t *testing.T) {
	body := `{"road_condition": "Smooth", "cap_pct_center_a": 70, "cap_pct_center_b": 65,
		"travel_time_original": 5, "travel_time_center_a": 3, "travel_time_center_b": 4}`
	status, payload, _ := doRequest(t, New(), "POST", servicedef.PathReroute, body)
	require.Equal(t, 200, status)
	assert.Equal(t, "Center A", payload.GetByKey(servicedef.FieldBestCenter).StringValue())
	assert.Equal(t, "Reroute to Center A", payload.GetByKey(servicedef.FieldRecommendation).StringValue())

	margins := payload.GetByKey(servicedef.FieldSurvivalMargins)
	assert.Equal(t, 2.0, margins.GetByKey("Original").Float64Value())
	assert.Equal(t, 4.0, margins.GetByKey("Center A").Float64Value())
	assert.Equal(t, 3.0, margins.GetByKey("Center B").Float64Value())
}

func TestRerouteRejectsBadParameters(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{"road_condition": "Flooded"}`,
		`{"road_condition": "Smooth", "cap_pct_center_a": 150}`,
	} {
		status, payload, _ := doRequest(t, New(), "POST", servicedef.PathReroute, body)
		assert.Equal(t, http.StatusUnprocessableEntity, status, body)
		assert.True(t, payload.GetByKey("detail").IsString(), body)
	}
}

func TestFaults(t *testing.T) {
	b := New()
	b.SetFault(servicedef.PathPrediction, Fault{OmitFields: []string{servicedef.FieldDaysLeft}})
	_, payload, _ := doRequest(t, b, "GET", servicedef.PathPrediction, "")
	assert.Equal(t, []string{servicedef.FieldStatus}, payload.Keys())

	b.SetFault(servicedef.PathTelemetry, Fault{MalformedBody: true})
	status, _, raw := doRequest(t, b, "GET", servicedef.PathTelemetry, "")
	assert.Equal(t, 200, status)
	assert.True(t, strings.HasPrefix(raw, "<html>"))

	b.SetFault(servicedef.PathRoot, Fault{StatusCode: 503})
	status, payload, _ = doRequest(t, b, "GET", servicedef.PathRoot, "")
	assert.Equal(t, 503, status)
	assert.Equal(t, "running", payload.GetByKey("status").StringValue())
}

func TestRequestsAreRecorded(t *testing.T) {
	b := New()
	doRequest(t, b, "GET", "/", "")
	doRequest(t, b, "POST", servicedef.PathReroute, `{"road_condition":"Rough"}`)

	requests := b.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, RecordedRequest{Method: "GET", Path: "/", RunID: "run-x", Body: []byte{}}, requests[0])
	assert.Equal(t, "POST", requests[1].Method)
	assert.Equal(t, `{"road_condition":"Rough"}`, string(requests[1].Body))
}

func TestPredictionStatus(t *testing.T) {
	assert.Equal(t, servicedef.StatusCritical, PredictionStatus(1.9))
	assert.Equal(t, servicedef.StatusWarning, PredictionStatus(2))
	assert.Equal(t, servicedef.StatusWarning, PredictionStatus(4.99))
	assert.Equal(t, servicedef.StatusNormal, PredictionStatus(5))
}

func TestPlanRerouteSkipsFullCenters(t *testing.T) {
	params := servicedef.DefaultRerouteParams()
	params.CapPctCenterA = 98
	plan, err := planReroute(params, normalDaysLeft)
	require.NoError(t, err)
	assert.Equal(t, "Center B", plan.bestCenter)
}

func TestPlanRerouteWithNoViableDestination(t *testing.T) {
	params := servicedef.DefaultRerouteParams()
	params.RoadCondition = "Rough"
	plan, err := planReroute(params, chaosDaysLeft)
	require.NoError(t, err)
	assert.Equal(t, "Center A", plan.bestCenter)
	assert.Contains(t, plan.recommendation, "No destination can be reached")
}
