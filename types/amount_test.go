package types

import (
	"math/big"
	"testing"
)

func TestAmountFormat(t *testing.T) {
	tests := []struct {
		name string
		a    Amount
		unit AmountUnit
		want string
	}{
		{"whole avail", NewAmountFromAvail(5), AmountAVAIL, "5 AVAIL"},
		{"lenna passthrough", NewAmountFromLenna(big.NewInt(42)), AmountLenna, "42 Lenna"},
		{"fractional avail", NewAmountFromLenna(big.NewInt(1_500_000_000_000_000_000 + 250_000_000_000_000_000)), AmountAVAIL, "1.75 AVAIL"},
		{"zero", NewAmountFromLenna(big.NewInt(0)), AmountAVAIL, "0 AVAIL"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.a.Format(test.unit); got != test.want {
				t.Fatalf("got %q want %q", got, test.want)
			}
		})
	}
}

func TestAmountStringDefaultsToAvail(t *testing.T) {
	a := NewAmountFromAvail(1)
	if a.String() != "1 AVAIL" {
		t.Fatalf("got %q", a.String())
	}
}
