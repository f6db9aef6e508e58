package convert

import "testing"

func TestRoundFloat64(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     float64
	}{
		{10.555, 2, 10.56},
		{10.0, 2, 10.0},
		{-3.14159, 3, -3.142},
	}
	for _, tt := range tests {
		if got := RoundFloat64(tt.in, tt.decimals); got != tt.want {
			t.Errorf("RoundFloat64(%f, %d) got %f, wanted %f", tt.in, tt.decimals, got, tt.want)
		}
	}
}

func TestEurPerMWhToCentPerKWh(t *testing.T) {
	if got := EurPerMWhToCentPerKWh(123.45); got != 12.345 {
		t.Errorf("got %f, wanted 12.345", got)
	}
}
