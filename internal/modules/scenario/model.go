// README: Two-route comparison inputs, thresholds and verdicts.
package scenario

import (
	"errors"
	"fmt"
	"math"

	"farefloor/internal/modules/pricing"
	"farefloor/internal/types"
)

var ErrInvalidThresholds = errors.New("invalid comparison thresholds")

type Outcome string

const (
	OutcomeLoopholeDetected     Outcome = "loophole_detected"
	OutcomeMitigationSuccessful Outcome = "mitigation_successful"
	OutcomeReasonable           Outcome = "reasonable"
)

// Thresholds are the fare gaps used to classify a comparison.
type Thresholds struct {
	// LoopholeThreshold is the A-B fare difference above which an unenforced floor is a loophole.
	LoopholeThreshold float64 `json:"loophole_threshold" yaml:"loophole_threshold"`
	// ConsistencyThreshold is the fare route B must exceed for the floor to count as effective.
	ConsistencyThreshold float64 `json:"consistency_threshold" yaml:"consistency_threshold"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		LoopholeThreshold:    60.0,
		ConsistencyThreshold: 45.0,
	}
}

// Validate requires both thresholds to be finite and non-negative.
func (t Thresholds) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"loophole_threshold", t.LoopholeThreshold},
		{"consistency_threshold", t.ConsistencyThreshold},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s must be a finite number >= 0, got %v", ErrInvalidThresholds, f.name, f.v)
		}
	}
	return nil
}

// RouteScenario is one trip served by two alternative routes. RouteB is the
// route expected to be under-priced (typically toll-free).
type RouteScenario struct {
	Name   string                 `json:"name,omitempty" yaml:"name"`
	RouteA pricing.TripAttributes `json:"route_a" yaml:"route_a"`
	RouteB pricing.TripAttributes `json:"route_b" yaml:"route_b"`
}

type Comparison struct {
	Difference float64 `json:"difference"`
	Outcome    Outcome `json:"outcome"`
}

type Report struct {
	Scenario      string                `json:"scenario,omitempty"`
	Tenant        types.ID              `json:"tenant"`
	FloorEnforced bool                  `json:"floor_enforced"`
	RouteA        pricing.FareBreakdown `json:"route_a"`
	RouteB        pricing.FareBreakdown `json:"route_b"`
	Comparison    Comparison            `json:"comparison"`
}
