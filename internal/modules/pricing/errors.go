package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidSchedule  = errors.New("invalid rate schedule")
	ErrScheduleNotFound = errors.New("rate schedule not found")
)

// InvalidInputError names the offending field and value.
// errors.Is(err, ErrInvalidInput) is true for every InvalidInputError; schedule
// violations additionally match ErrInvalidSchedule.
type InvalidInputError struct {
	Field string
	Rule  string
	Value float64

	kind error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s %s, got %v", e.Field, e.Rule, e.Value)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *InvalidInputError) Unwrap() error {
	return e.kind
}

func checkNonNegative(field string, v float64) error {
	if !isFinite(v) || v < 0 {
		return &InvalidInputError{Field: field, Rule: "must be a finite number >= 0", Value: v}
	}
	return nil
}

func checkPositive(field string, v float64) error {
	if !isFinite(v) || v <= 0 {
		return &InvalidInputError{Field: field, Rule: "must be a finite number > 0", Value: v}
	}
	return nil
}

func checkScheduleRate(field string, v float64) error {
	if !isFinite(v) || v <= 0 {
		return &InvalidInputError{Field: field, Rule: "must be a finite number > 0", Value: v, kind: ErrInvalidSchedule}
	}
	return nil
}

func checkScheduleFloor(field string, v float64) error {
	if !isFinite(v) || v < 1.0 {
		return &InvalidInputError{Field: field, Rule: "must be a finite number >= 1.0", Value: v, kind: ErrInvalidSchedule}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
