package pricing

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"farefloor/internal/types"
)

func newTestService(t *testing.T, buf *bytes.Buffer) *Service {
	t.Helper()
	schedules := NewSchedules(map[types.ID]RateSchedule{
		DefaultTenant: DefaultRateSchedule(),
		"city":        citySchedule,
	}, nil)
	log := slog.New(slog.NewTextHandler(buf, nil))
	return NewService(schedules, log)
}

func TestService_QuoteDefaultTenant(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, &buf)

	q, err := svc.Quote(context.Background(), "", TripAttributes{
		TimeMinutes: 57, DistanceKm: 65, SurgeMultiplier: 0.75, IsPeakHour: true,
	}, true)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Tenant != DefaultTenant {
		t.Errorf("tenant = %q, want %q", q.Tenant, DefaultTenant)
	}
	if q.Schedule != DefaultRateSchedule() {
		t.Errorf("schedule = %+v", q.Schedule)
	}
	if q.Fare.FinalFare != 148.32 || !q.Fare.FloorApplied {
		t.Errorf("fare = %+v", q.Fare)
	}
	if !strings.Contains(buf.String(), "surge floor applied") {
		t.Errorf("expected floor activation log, got %q", buf.String())
	}
}

func TestService_QuoteNoLogWithoutFloor(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, &buf)

	q, err := svc.Quote(context.Background(), DefaultTenant, TripAttributes{
		TimeMinutes: 57, DistanceKm: 65, SurgeMultiplier: 0.75, IsPeakHour: true,
	}, false)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Fare.FinalFare != 92.70 || q.Fare.FloorApplied {
		t.Errorf("fare = %+v", q.Fare)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}

func TestService_QuoteTenantSchedule(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, &buf)

	q, err := svc.Quote(context.Background(), "city", TripAttributes{
		TimeMinutes: 10, DistanceKm: 10, SurgeMultiplier: 1.0, IsPeakHour: true,
	}, true)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	// (10*1.10 + 10*1.50) * 1.35 = 26 * 1.35
	if q.Fare.FinalFare != 35.10 || q.Fare.EffectiveSurgeMultiplier != 1.35 {
		t.Errorf("fare = %+v", q.Fare)
	}
}

func TestService_QuoteErrors(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, &buf)
	ctx := context.Background()

	if _, err := svc.Quote(ctx, "ghost", TripAttributes{SurgeMultiplier: 1}, false); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
	if _, err := svc.Quote(ctx, DefaultTenant, TripAttributes{DistanceKm: -1, SurgeMultiplier: 1}, false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Schedule(t *testing.T) {
	var buf bytes.Buffer
	svc := newTestService(t, &buf)

	got, err := svc.Schedule(context.Background(), "")
	if err != nil || got != DefaultRateSchedule() {
		t.Fatalf("schedule: %+v, %v", got, err)
	}
	tenants, err := svc.Tenants(context.Background())
	if err != nil {
		t.Fatalf("tenants: %v", err)
	}
	if len(tenants) != 2 || tenants[0] != "city" || tenants[1] != DefaultTenant {
		t.Fatalf("tenants = %v", tenants)
	}
}

func TestErrorReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&InvalidInputError{Field: "toll_fee"}, "invalid_input"},
		{&InvalidInputError{Field: "rate_per_km", kind: ErrInvalidSchedule}, "invalid_schedule"},
		{ErrScheduleNotFound, "schedule_not_found"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := errorReason(tt.err); got != tt.want {
			t.Errorf("errorReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
