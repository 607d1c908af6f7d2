package fakebackend

import (
	"fmt"

	"github.com/aegis-harvest/api-smoke-tests/servicedef"
)

const (
	centerOriginal = "Original"
	centerA        = "Center A"
	centerB        = "Center B"
)

// Capacity at or above this percentage means a center cannot accept the shipment.
const maxUsableCapacityPct = 95

var roadDelayFactors = map[string]float64{
	"Smooth":   1.0,
	"Moderate": 1.25,
	"Rough":    1.5,
}

// PredictionStatus classifies a days-left estimate the same way the dashboard does.
func PredictionStatus(daysLeft float64) string {
	switch {
	case daysLeft < 2:
		return servicedef.StatusCritical
	case daysLeft >= 5:
		return servicedef.StatusNormal
	default:
		return servicedef.StatusWarning
	}
}

type centerMargin struct {
	name   string
	margin float64
}

type reroutePlan struct {
	bestCenter     string
	recommendation string
	margins        []centerMargin
	daysLeft       float64
}

// planReroute picks the destination with the largest survival margin, where the margin is the
// remaining shelf life minus the road-adjusted travel time. Travel times are in days.
func planReroute(params servicedef.RerouteParams, daysLeft float64) (reroutePlan, error) {
	factor, ok := roadDelayFactors[params.RoadCondition]
	if !ok {
		return reroutePlan{}, fmt.Errorf("unknown road condition %q", params.RoadCondition)
	}
	for _, pct := range []int{params.CapPctCenterA, params.CapPctCenterB} {
		if pct < 0 || pct > 100 {
			return reroutePlan{}, fmt.Errorf("capacity percentage %d is out of range", pct)
		}
	}

	margin := func(travelTime int) float64 {
		return daysLeft - float64(travelTime)*factor
	}
	plan := reroutePlan{
		daysLeft: daysLeft,
		margins: []centerMargin{
			{centerOriginal, margin(params.TravelTimeOriginal)},
			{centerA, margin(params.TravelTimeCenterA)},
			{centerB, margin(params.TravelTimeCenterB)},
		},
	}

	best := plan.margins[0]
	for i, m := range plan.margins[1:] {
		capacity := params.CapPctCenterA
		if i == 1 {
			capacity = params.CapPctCenterB
		}
		if capacity < maxUsableCapacityPct && m.margin > best.margin {
			best = m
		}
	}
	plan.bestCenter = best.name

	switch {
	case best.margin < 0:
		plan.recommendation = "No destination can be reached before spoilage; divert to the nearest rescue point"
	case best.name == centerOriginal:
		plan.recommendation = "Continue to the original destination"
	default:
		plan.recommendation = fmt.Sprintf("Reroute to %s", best.name)
	}
	return plan, nil
}
