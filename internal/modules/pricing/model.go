// README: Trip inputs, rate schedules and fare breakdowns for the pricing module.
package pricing

import "farefloor/internal/types"

// DefaultTenant is the schedule used when a request names no tenant.
const DefaultTenant types.ID = "default"

// TripAttributes is the caller-supplied description of one route choice for a trip.
type TripAttributes struct {
	TimeMinutes     float64 `json:"time_minutes" yaml:"time_minutes"`
	DistanceKm      float64 `json:"distance_km" yaml:"distance_km"`
	TollFee         float64 `json:"toll_fee" yaml:"toll_fee"`
	SurgeMultiplier float64 `json:"surge_multiplier" yaml:"surge_multiplier"`
	IsPeakHour      bool    `json:"is_peak_hour" yaml:"is_peak_hour"`
}

// Validate reports the first out-of-range field as an *InvalidInputError.
func (t TripAttributes) Validate() error {
	if err := checkNonNegative("time_minutes", t.TimeMinutes); err != nil {
		return err
	}
	if err := checkNonNegative("distance_km", t.DistanceKm); err != nil {
		return err
	}
	if err := checkNonNegative("toll_fee", t.TollFee); err != nil {
		return err
	}
	return checkPositive("surge_multiplier", t.SurgeMultiplier)
}

// RateSchedule holds the per-tenant rates. Values are copied into every computation
// and never mutated after construction.
type RateSchedule struct {
	RatePerMinute  float64 `json:"rate_per_minute" yaml:"rate_per_minute"`
	RatePerKm      float64 `json:"rate_per_km" yaml:"rate_per_km"`
	PeakSurgeFloor float64 `json:"peak_surge_floor" yaml:"peak_surge_floor"`
}

// DefaultRateSchedule is the reference schedule: 0.80/min, 1.20/km, 1.20x peak floor.
func DefaultRateSchedule() RateSchedule {
	return RateSchedule{
		RatePerMinute:  0.80,
		RatePerKm:      1.20,
		PeakSurgeFloor: 1.20,
	}
}

// NewRateSchedule builds a validated schedule.
func NewRateSchedule(ratePerMinute, ratePerKm, peakSurgeFloor float64) (RateSchedule, error) {
	s := RateSchedule{
		RatePerMinute:  ratePerMinute,
		RatePerKm:      ratePerKm,
		PeakSurgeFloor: peakSurgeFloor,
	}
	if err := s.Validate(); err != nil {
		return RateSchedule{}, err
	}
	return s, nil
}

func (s RateSchedule) Validate() error {
	if err := checkScheduleRate("rate_per_minute", s.RatePerMinute); err != nil {
		return err
	}
	if err := checkScheduleRate("rate_per_km", s.RatePerKm); err != nil {
		return err
	}
	return checkScheduleFloor("peak_surge_floor", s.PeakSurgeFloor)
}

// FareBreakdown is the result of one fare computation.
// FinalFare == round((BaseCost+TollFee)*EffectiveSurgeMultiplier, 2).
type FareBreakdown struct {
	BaseCost                 float64 `json:"base_cost"`
	TollFee                  float64 `json:"toll_fee"`
	SurgeMultiplier          float64 `json:"surge_multiplier"`
	EffectiveSurgeMultiplier float64 `json:"effective_surge_multiplier"`
	FinalFare                float64 `json:"final_fare"`
	FloorApplied             bool    `json:"floor_applied"`
}

// Quote is a fare computed by the Service together with the schedule it used.
type Quote struct {
	Tenant   types.ID      `json:"tenant"`
	Schedule RateSchedule  `json:"schedule"`
	Fare     FareBreakdown `json:"fare"`
}
