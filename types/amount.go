package types

import (
	"fmt"
	"math/big"
)

// OneAvail is the number of the chain's smallest unit ("Lenna" in
// Avail's own terminology) in a single AVAIL token, mirroring the
// original client's ONE_AVAIL constant.
var OneAvail = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// AmountUnit selects a display scale for Amount.Format, the same shape
// as the teacher's AmountMilliCoin/AmountMicroCoin unit selectors
// generalized from a float64-based DCR amount to a big.Int-based AVAIL
// amount (AVAIL's base unit needs 128 bits of range, a float64 cannot
// represent it exactly).
type AmountUnit int

const (
	AmountAVAIL AmountUnit = iota
	AmountMilliAVAIL
	AmountMicroAVAIL
	AmountLenna // the indivisible base unit, 1e-18 AVAIL
)

func (u AmountUnit) String() string {
	switch u {
	case AmountAVAIL:
		return "AVAIL"
	case AmountMilliAVAIL:
		return "mAVAIL"
	case AmountMicroAVAIL:
		return "uAVAIL"
	case AmountLenna:
		return "Lenna"
	default:
		return "AVAIL"
	}
}

func (u AmountUnit) exponent() int64 {
	switch u {
	case AmountAVAIL:
		return 18
	case AmountMilliAVAIL:
		return 15
	case AmountMicroAVAIL:
		return 12
	case AmountLenna:
		return 0
	default:
		return 18
	}
}

// Amount is an unsigned 128-bit quantity denominated in the chain's
// base unit (Lenna), the type used for balances and the tip field.
type Amount struct {
	big.Int
}

// NewAmountFromAvail builds an Amount from a whole-number count of
// AVAIL tokens (n * 10^18 Lenna).
func NewAmountFromAvail(n uint64) Amount {
	var a Amount
	a.Int.Mul(big.NewInt(int64(n)), OneAvail)
	return a
}

// NewAmountFromLenna builds an Amount directly from its base-unit value.
func NewAmountFromLenna(v *big.Int) Amount {
	var a Amount
	a.Int.Set(v)
	return a
}

// Format renders the amount scaled to unit, with up to 18 fractional
// digits, trailing zeros trimmed.
func (a Amount) Format(unit AmountUnit) string {
	exp := unit.exponent()
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)

	quotient, remainder := new(big.Int).QuoRem(&a.Int, divisor, new(big.Int))
	if remainder.Sign() == 0 {
		return fmt.Sprintf("%s %s", quotient.String(), unit)
	}

	fracStr := fmt.Sprintf("%0*s", exp, remainder.String())
	for len(fracStr) > 0 && fracStr[len(fracStr)-1] == '0' {
		fracStr = fracStr[:len(fracStr)-1]
	}
	return fmt.Sprintf("%s.%s %s", quotient.String(), fracStr, unit)
}

// String implements fmt.Stringer, defaulting to whole-AVAIL display.
func (a Amount) String() string {
	return a.Format(AmountAVAIL)
}
