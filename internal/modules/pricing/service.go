// README: Pricing service resolves the tenant schedule, computes the fare and reports floor activations.
package pricing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"farefloor/internal/observability/metrics"
	"farefloor/internal/types"
)

type ScheduleResolver interface {
	Resolve(ctx context.Context, tenant types.ID) (RateSchedule, error)
	Tenants(ctx context.Context) ([]types.ID, error)
}

type Service struct {
	schedules ScheduleResolver
	log       *slog.Logger
}

func NewService(schedules ScheduleResolver, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{schedules: schedules, log: log}
}

func (s *Service) Schedule(ctx context.Context, tenant types.ID) (RateSchedule, error) {
	if tenant == "" {
		tenant = DefaultTenant
	}
	return s.schedules.Resolve(ctx, tenant)
}

func (s *Service) Tenants(ctx context.Context) ([]types.ID, error) {
	return s.schedules.Tenants(ctx)
}

// Quote prices one trip under the tenant's schedule.
func (s *Service) Quote(ctx context.Context, tenant types.ID, trip TripAttributes, enforceFloor bool) (Quote, error) {
	start := time.Now()
	if tenant == "" {
		tenant = DefaultTenant
	}

	sched, err := s.schedules.Resolve(ctx, tenant)
	if err != nil {
		metrics.IncQuoteError(errorReason(err))
		return Quote{}, err
	}

	fare, err := Compute(trip, enforceFloor, sched)
	if err != nil {
		metrics.IncQuoteError(errorReason(err))
		return Quote{}, err
	}
	metrics.ObserveQuote(fare.FloorApplied, time.Since(start))

	if fare.FloorApplied {
		s.log.InfoContext(ctx, "surge floor applied",
			"tenant", string(tenant),
			"requested_multiplier", fare.SurgeMultiplier,
			"effective_multiplier", fare.EffectiveSurgeMultiplier,
			"final_fare", fare.FinalFare,
		)
	}

	return Quote{Tenant: tenant, Schedule: sched, Fare: fare}, nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSchedule):
		return "invalid_schedule"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrScheduleNotFound):
		return "schedule_not_found"
	default:
		return "internal"
	}
}
