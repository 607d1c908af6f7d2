// Package fakebackend is a stand-in for the Aegis Harvest backend, for testing the smoke tests
// without the real service.
//
// It serves the same endpoints with fixed, plausible values. None of the numbers it returns
// come from the real telemetry, prediction, or reroute models. Faults can be injected per path
// to make responses incomplete, malformed, or unsuccessful.
package fakebackend

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/aegis-harvest/api-smoke-tests/servicedef"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	normalDaysLeft = 7.0
	chaosDaysLeft  = 1.5
)

// Fault changes how the backend answers requests for one path.
type Fault struct {
	// OmitFields are removed from the JSON object that would otherwise be returned.
	OmitFields []string
	// MalformedBody replaces the response body with something that is not JSON.
	MalformedBody bool
	// StatusCode, if non-zero, replaces the response status. The body is unchanged.
	StatusCode int
}

// RecordedRequest is a request that the backend received.
type RecordedRequest struct {
	Method string
	Path   string
	RunID  string
	Body   []byte
}

// Backend is an http.Handler that imitates the Aegis Harvest API.
type Backend struct {
	router    *chi.Mux
	chaosMode bool
	faults    map[string]Fault
	requests  []RecordedRequest
	lock      sync.Mutex
}

// New creates a Backend with chaos mode off and no faults.
func New() *Backend {
	b := &Backend{
		faults: make(map[string]Fault),
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(b.recordRequest)

	r.Get(servicedef.PathRoot, b.handleRoot)
	r.Get(servicedef.PathTelemetry, b.handleTelemetry)
	r.Get(servicedef.PathPrediction, b.handlePrediction)
	r.Post(servicedef.PathChaos, b.handleChaosToggle)
	r.Get(servicedef.PathChaosStatus, b.handleChaosStatus)
	r.Post(servicedef.PathReroute, b.handleReroute)
	b.router = r

	return b
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// SetFault makes all later requests for path misbehave as described by f.
func (b *Backend) SetFault(path string, f Fault) {
	b.lock.Lock()
	b.faults[path] = f
	b.lock.Unlock()
}

// ChaosMode reports whether chaos mode is currently on.
func (b *Backend) ChaosMode() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.chaosMode
}

// Requests returns every request received so far, oldest first.
func (b *Backend) Requests() []RecordedRequest {
	b.lock.Lock()
	defer b.lock.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

func (b *Backend) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		b.lock.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			RunID:  r.Header.Get(servicedef.RunIDHeader),
			Body:   body,
		})
		b.lock.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) daysLeft() float64 {
	if b.ChaosMode() {
		return chaosDaysLeft
	}
	return normalDaysLeft
}

func (b *Backend) handleRoot(w http.ResponseWriter, r *http.Request) {
	b.writeJSON(w, r, http.StatusOK, ldvalue.ObjectBuild().
		Set("message", ldvalue.String("Aegis Harvest API")).
		Set("status", ldvalue.String("running")).
		Build())
}

func (b *Backend) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	temperature, humidity, vibration := 4.0, 60.0, 0.2
	if b.ChaosMode() {
		temperature, humidity, vibration = 14.5, 88.0, 0.9
	}
	b.writeJSON(w, r, http.StatusOK, ldvalue.ObjectBuild().
		Set(servicedef.FieldTemperature, ldvalue.Float64(temperature)).
		Set(servicedef.FieldHumidity, ldvalue.Float64(humidity)).
		Set(servicedef.FieldVibration, ldvalue.Float64(vibration)).
		Set(servicedef.FieldDistance, ldvalue.Float64(200.0)).
		Set(servicedef.FieldTimestamp, ldvalue.String(time.Now().UTC().Format(time.RFC3339))).
		Build())
}

func (b *Backend) handlePrediction(w http.ResponseWriter, r *http.Request) {
	daysLeft := b.daysLeft()
	b.writeJSON(w, r, http.StatusOK, ldvalue.ObjectBuild().
		Set(servicedef.FieldDaysLeft, ldvalue.Float64(daysLeft)).
		Set(servicedef.FieldStatus, ldvalue.String(PredictionStatus(daysLeft))).
		Build())
}

func (b *Backend) handleChaosToggle(w http.ResponseWriter, r *http.Request) {
	b.lock.Lock()
	b.chaosMode = !b.chaosMode
	b.lock.Unlock()
	b.handleChaosStatus(w, r)
}

func (b *Backend) handleChaosStatus(w http.ResponseWriter, r *http.Request) {
	daysLeft := b.daysLeft()
	b.writeJSON(w, r, http.StatusOK, ldvalue.ObjectBuild().
		Set(servicedef.FieldChaosMode, ldvalue.Bool(b.ChaosMode())).
		Set(servicedef.FieldDaysLeft, ldvalue.Float64(daysLeft)).
		Set(servicedef.FieldStatus, ldvalue.String(PredictionStatus(daysLeft))).
		Build())
}

func (b *Backend) handleReroute(w http.ResponseWriter, r *http.Request) {
	var params servicedef.RerouteParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		b.writeError(w, r, http.StatusUnprocessableEntity, "invalid reroute parameters: "+err.Error())
		return
	}
	plan, err := planReroute(params, b.daysLeft())
	if err != nil {
		b.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	margins := ldvalue.ObjectBuild()
	for _, m := range plan.margins {
		margins.Set(m.name, ldvalue.Float64(m.margin))
	}
	b.writeJSON(w, r, http.StatusOK, ldvalue.ObjectBuild().
		Set(servicedef.FieldBestCenter, ldvalue.String(plan.bestCenter)).
		Set(servicedef.FieldRecommendation, ldvalue.String(plan.recommendation)).
		Set(servicedef.FieldSurvivalMargins, margins.Build()).
		Set(servicedef.FieldDaysLeft, ldvalue.Float64(plan.daysLeft)).
		Set(servicedef.FieldStatus, ldvalue.String(PredictionStatus(plan.daysLeft))).
		Build())
}

func (b *Backend) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	b.writeJSON(w, r, status, ldvalue.ObjectBuild().Set("detail", ldvalue.String(message)).Build())
}

func (b *Backend) writeJSON(w http.ResponseWriter, r *http.Request, status int, value ldvalue.Value) {
	b.lock.Lock()
	fault, hasFault := b.faults[r.URL.Path]
	b.lock.Unlock()

	body := []byte(value.JSONString())
	if hasFault {
		if len(fault.OmitFields) != 0 {
			body = []byte(omitFields(value, fault.OmitFields).JSONString())
		}
		if fault.MalformedBody {
			body = []byte("<html><body>Internal Server Error</body></html>")
		}
		if fault.StatusCode != 0 {
			status = fault.StatusCode
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func omitFields(value ldvalue.Value, names []string) ldvalue.Value {
	builder := ldvalue.ObjectBuild()
KeyLoop:
	for _, key := range value.Keys() {
		for _, name := range names {
			if key == name {
				continue KeyLoop
			}
		}
		builder.Set(key, value.GetByKey(key))
	}
	return builder.Build()
}
