// README: Pure fare computation: time/distance base cost, then toll and surge with the peak floor.
package pricing

import "farefloor/internal/types"

// BaseFare converts trip time and distance into a base cost. The result is not
// rounded; rounding happens once, on the final fare.
func BaseFare(timeMinutes, distanceKm float64, schedule RateSchedule) (float64, error) {
	if err := schedule.Validate(); err != nil {
		return 0, err
	}
	if err := checkNonNegative("time_minutes", timeMinutes); err != nil {
		return 0, err
	}
	if err := checkNonNegative("distance_km", distanceKm); err != nil {
		return 0, err
	}

	timeCost := types.Amount(timeMinutes).Mul(types.Amount(schedule.RatePerMinute))
	distanceCost := types.Amount(distanceKm).Mul(types.Amount(schedule.RatePerKm))
	return types.Float(timeCost.Add(distanceCost)), nil
}

// ApplySurgeAndToll adds the toll to the base cost and applies the surge multiplier.
// With enforceFloor set, a toll-free peak-hour trip surged below the schedule's
// PeakSurgeFloor is charged at the floor instead.
func ApplySurgeAndToll(
	baseCost, tollFee, surgeMultiplier float64,
	isPeakHour, enforceFloor bool,
	schedule RateSchedule,
) (FareBreakdown, error) {
	if err := schedule.Validate(); err != nil {
		return FareBreakdown{}, err
	}
	if err := checkNonNegative("base_cost", baseCost); err != nil {
		return FareBreakdown{}, err
	}
	if err := checkNonNegative("toll_fee", tollFee); err != nil {
		return FareBreakdown{}, err
	}
	if err := checkPositive("surge_multiplier", surgeMultiplier); err != nil {
		return FareBreakdown{}, err
	}

	subtotal := types.Amount(baseCost).Add(types.Amount(tollFee))

	effective := surgeMultiplier
	if floorApplies(tollFee, surgeMultiplier, isPeakHour, enforceFloor, schedule) {
		effective = schedule.PeakSurgeFloor
	}

	final := types.RoundCents(subtotal.Mul(types.Amount(effective)))

	return FareBreakdown{
		BaseCost:                 baseCost,
		TollFee:                  tollFee,
		SurgeMultiplier:          surgeMultiplier,
		EffectiveSurgeMultiplier: effective,
		FinalFare:                types.Float(final),
		FloorApplied:             effective != surgeMultiplier,
	}, nil
}

// floorApplies is true only for the exact combination: floor enforced, peak hour,
// no toll, and a multiplier strictly below the floor.
func floorApplies(tollFee, surgeMultiplier float64, isPeakHour, enforceFloor bool, schedule RateSchedule) bool {
	return enforceFloor &&
		isPeakHour &&
		tollFee == 0 &&
		surgeMultiplier < schedule.PeakSurgeFloor
}

// Compute runs BaseFare then ApplySurgeAndToll for one trip.
func Compute(trip TripAttributes, enforceFloor bool, schedule RateSchedule) (FareBreakdown, error) {
	if err := trip.Validate(); err != nil {
		return FareBreakdown{}, err
	}
	base, err := BaseFare(trip.TimeMinutes, trip.DistanceKm, schedule)
	if err != nil {
		return FareBreakdown{}, err
	}
	return ApplySurgeAndToll(base, trip.TollFee, trip.SurgeMultiplier, trip.IsPeakHour, enforceFloor, schedule)
}
