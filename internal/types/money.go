// README: Common value objects used across modules; money is exact decimal rounded to cents.
package types

import "github.com/shopspring/decimal"

// ID identifies a tenant or caller.
type ID string

// CentPlaces is the number of decimal places a final fare is rounded to.
const CentPlaces = 2

// Amount lifts a float into an exact decimal using its shortest decimal representation,
// so 8.13 is 8.13 and not 8.1300000000000007815970093361102044582366943359375.
// The caller must ensure v is finite.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// RoundCents rounds half away from zero to CentPlaces.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// Float converts a decimal back to the nearest float64 for the wire.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
