// Package servicedef describes the HTTP interface of the Aegis Harvest backend, as far as
// the smoke tests rely on it.
package servicedef

// RunIDHeader is sent with every request so that backend logs can be matched to a test run.
const RunIDHeader = "X-Aegis-Run-Id"

const DefaultBaseURL = "http://localhost:8000"

const (
	PathRoot        = "/"
	PathTelemetry   = "/api/telemetry"
	PathPrediction  = "/api/prediction"
	PathChaos       = "/api/chaos"
	PathChaosStatus = "/api/chaos/status"
	PathReroute     = "/api/reroute"
)

const (
	FieldTemperature     = "temperature"
	FieldHumidity        = "humidity"
	FieldVibration       = "vibration"
	FieldDistance        = "distance"
	FieldTimestamp       = "timestamp"
	FieldDaysLeft        = "days_left"
	FieldStatus          = "status"
	FieldChaosMode       = "chaos_mode"
	FieldBestCenter      = "best_center"
	FieldRecommendation  = "recommendation"
	FieldSurvivalMargins = "survival_margins"
)

// Prediction status values.
const (
	StatusNormal   = "NORMAL"
	StatusWarning  = "WARNING"
	StatusCritical = "CRITICAL"
)

// RerouteParams is the request body for a reroute calculation.
type RerouteParams struct {
	RoadCondition      string `json:"road_condition"`
	CapPctCenterA      int    `json:"cap_pct_center_a"`
	CapPctCenterB      int    `json:"cap_pct_center_b"`
	TravelTimeOriginal int    `json:"travel_time_original"`
	TravelTimeCenterA  int    `json:"travel_time_center_a"`
	TravelTimeCenterB  int    `json:"travel_time_center_b"`
}

// DefaultRerouteParams returns the fixed reroute request used by the smoke tests.
func DefaultRerouteParams() RerouteParams {
	return RerouteParams{
		RoadCondition:      "Smooth",
		CapPctCenterA:      70,
		CapPctCenterB:      65,
		TravelTimeOriginal: 5,
		TravelTimeCenterA:  3,
		TravelTimeCenterB:  4,
	}
}
