package types

import "testing"

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{197.421, 197.42},
		{92.7075, 92.71},
		{0.125, 0.13},
		{2.675, 2.68},
		{148.32, 148.32},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Float(RoundCents(Amount(tt.in))); got != tt.want {
			t.Errorf("RoundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAmount_ShortestRepresentation(t *testing.T) {
	if got := Amount(8.13).String(); got != "8.13" {
		t.Fatalf("Amount(8.13) = %s", got)
	}
	sum := Amount(108).Add(Amount(8.13)).Mul(Amount(1.7))
	if got := sum.String(); got != "197.421" {
		t.Fatalf("(108+8.13)*1.7 = %s", got)
	}
}
