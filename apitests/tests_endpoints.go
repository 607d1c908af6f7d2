package apitests

import (
	"github.com/aegis-harvest/api-smoke-tests/servicedef"
)

// DoRootTests checks that the service is up. Any JSON response is acceptable.
func DoRootTests(t *T) {
	payload := t.RequireGet(servicedef.PathRoot)
	t.Info("Response: %s", payload.JSONString())
}

func DoTelemetryTests(t *T) {
	payload := t.RequireGet(servicedef.PathTelemetry)
	t.Info("Temperature: %s°C", formatNumber(t.RequireNumber(payload, servicedef.FieldTemperature)))
	t.Info("Humidity: %s%%", formatNumber(t.RequireNumber(payload, servicedef.FieldHumidity)))
	t.Info("Vibration: %sG", formatNumber(t.RequireNumber(payload, servicedef.FieldVibration)))
}

func DoPredictionTests(t *T) {
	payload := t.RequireGet(servicedef.PathPrediction)
	t.Info("Days Left: %s days", formatNumber(t.RequireNumber(payload, servicedef.FieldDaysLeft)))
	t.Info("Status: %s", t.RequireString(payload, servicedef.FieldStatus))
}

// DoChaosTests flips the backend's chaos mode. The previous state is not restored.
func DoChaosTests(t *T) {
	payload := t.RequirePost(servicedef.PathChaos, nil)
	t.Info("Chaos Mode: %t", t.RequireBoolLike(payload, servicedef.FieldChaosMode))
	t.Info("Days Left: %s days", formatNumber(t.RequireNumber(payload, servicedef.FieldDaysLeft)))
}

func DoRerouteTests(t *T) {
	params := servicedef.DefaultRerouteParams()
	t.Debug("Reroute parameters: %+v", params)
	payload := t.RequirePost(servicedef.PathReroute, params)
	t.Info("Best Center: %s", t.RequireString(payload, servicedef.FieldBestCenter))
	t.Info("Recommendation: %s", t.RequireString(payload, servicedef.FieldRecommendation))
	t.Info("Survival Margins: %s", t.RequireField(payload, servicedef.FieldSurvivalMargins).JSONString())
}
