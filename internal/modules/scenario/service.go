// README: Scenario service prices both routes of a trip and classifies the fare gap.
package scenario

import (
	"context"
	"fmt"

	"farefloor/internal/modules/pricing"
	"farefloor/internal/observability/metrics"
	"farefloor/internal/types"
)

// Compare classifies the gap between two fares for the same trip. The checks run
// in order: loophole (floor off, gap above LoopholeThreshold), then mitigation
// (floor on, b above ConsistencyThreshold), else reasonable.
func Compare(a, b pricing.FareBreakdown, floorEnforced bool, th Thresholds) Comparison {
	diff := types.Amount(a.FinalFare).Sub(types.Amount(b.FinalFare))
	difference := types.Float(types.RoundCents(diff))

	outcome := OutcomeReasonable
	switch {
	case !floorEnforced && difference > th.LoopholeThreshold:
		outcome = OutcomeLoopholeDetected
	case floorEnforced && b.FinalFare > th.ConsistencyThreshold:
		outcome = OutcomeMitigationSuccessful
	}

	return Comparison{Difference: difference, Outcome: outcome}
}

type Quoter interface {
	Quote(ctx context.Context, tenant types.ID, trip pricing.TripAttributes, enforceFloor bool) (pricing.Quote, error)
}

type Service struct {
	pricing    Quoter
	thresholds Thresholds
}

func NewService(pricing Quoter, thresholds Thresholds) *Service {
	return &Service{pricing: pricing, thresholds: thresholds}
}

func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

// Run quotes both routes under one tenant schedule and compares them.
func (s *Service) Run(ctx context.Context, tenant types.ID, sc RouteScenario, enforceFloor bool) (Report, error) {
	qa, err := s.pricing.Quote(ctx, tenant, sc.RouteA, enforceFloor)
	if err != nil {
		return Report{}, fmt.Errorf("route_a: %w", err)
	}
	qb, err := s.pricing.Quote(ctx, tenant, sc.RouteB, enforceFloor)
	if err != nil {
		return Report{}, fmt.Errorf("route_b: %w", err)
	}

	cmp := Compare(qa.Fare, qb.Fare, enforceFloor, s.thresholds)
	metrics.IncComparison(string(cmp.Outcome))

	return Report{
		Scenario:      sc.Name,
		Tenant:        qa.Tenant,
		FloorEnforced: enforceFloor,
		RouteA:        qa.Fare,
		RouteB:        qb.Fare,
		Comparison:    cmp,
	}, nil
}
