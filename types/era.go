package types

import (
	"io"
	"math/bits"

	"github.com/availproject/avail-go-sdk/scale"
)

// Era is a transaction's mortality window: either Immortal (valid
// forever, encodes as one zero byte) or Mortal{period, phase}, which
// pins validity to [anchor_height, anchor_height+period) via a quantized
// 2-byte encoding.
type Era struct {
	Immortal bool
	Period   uint64
	Phase    uint64
}

// ImmortalEra returns the always-valid era.
func ImmortalEra() Era {
	return Era{Immortal: true}
}

// NewMortalEra clamps period to the nearest power of two in [4, 65536]
// and sets phase to currentHeight modulo that period. Phase is stored
// unquantized; Encode quantizes it to the period's quantize factor
// (period>>12, minimum 1), per the Substrate mortal-era scheme.
func NewMortalEra(period, currentHeight uint64) Era {
	clamped := clampPeriod(period)
	phase := currentHeight % clamped
	return Era{Period: clamped, Phase: phase}
}

func clampPeriod(period uint64) uint64 {
	if period < 4 {
		period = 4
	}
	if period > 65536 {
		period = 65536
	}
	return nextPowerOfTwo(period)
}

func nextPowerOfTwo(n uint64) uint64 {
	if n&(n-1) == 0 {
		return n
	}
	return uint64(1) << bits.Len64(n)
}

func quantizeFactor(period uint64) uint64 {
	q := period >> 12
	if q < 1 {
		q = 1
	}
	return q
}

// Encode writes the Era using the 1-byte immortal or 2-byte mortal
// encoding: for Mortal, the low 4 bits of the first byte are
// max(1, min(15, log2(period)-1)) and the remaining 12 bits (split
// across both bytes) carry phase/quantize_factor.
func (e Era) Encode(w io.Writer) error {
	if e.Immortal {
		return scale.EncodeUint8(w, 0)
	}

	period := clampPeriod(e.Period)
	quantizedPhase := e.Phase / quantizeFactor(period)

	trailingZeros := bits.TrailingZeros64(period)
	encodedPeriod := trailingZeros - 1
	if encodedPeriod < 1 {
		encodedPeriod = 1
	}
	if encodedPeriod > 15 {
		encodedPeriod = 15
	}

	value := uint16(encodedPeriod) | uint16(quantizedPhase<<4)
	return scale.EncodeUint16(w, value)
}

// Decode reads an Era, reconstructing the quantized phase for the
// mortal case.
func (e *Era) Decode(r io.Reader) error {
	first, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}
	if first == 0 {
		*e = ImmortalEra()
		return nil
	}

	second, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}

	value := uint16(first) | uint16(second)<<8
	encodedPeriod := value & 0x0F
	quantizedPhase := value >> 4

	period := uint64(1) << (encodedPeriod + 1)
	phase := uint64(quantizedPhase) * quantizeFactor(period)

	e.Immortal = false
	e.Period = period
	e.Phase = phase
	return nil
}

// Birth returns the block height at which this era's validity window
// opens, given the current height (used only to re-derive phase when
// constructing; once encoded/decoded, Phase already reflects it).
func (e Era) Birth(current uint64) uint64 {
	if e.Immortal {
		return 0
	}
	return (current - (current % e.Period)) + e.Phase
}

// Death returns the block height at which this era's validity window
// closes (exclusive).
func (e Era) Death(current uint64) uint64 {
	if e.Immortal {
		return ^uint64(0)
	}
	return e.Birth(current) + e.Period
}

// Mortality is the refined, post-Options.build() view of a
// transaction's validity window: a concrete period anchored at a known
// block.
type Mortality struct {
	Period      uint64
	BlockHash   BlockHash
	BlockHeight uint32
}

// DefaultMortalityPeriod is the period used when Options.mortality is
// left unset.
const DefaultMortalityPeriod = 32

// Era derives the wire Era for this mortality, anchored at BlockHeight.
func (m Mortality) Era() Era {
	return NewMortalEra(m.Period, uint64(m.BlockHeight))
}

// End returns the block height at which this mortality window closes.
func (m Mortality) End() uint32 {
	return m.BlockHeight + uint32(m.Period)
}
