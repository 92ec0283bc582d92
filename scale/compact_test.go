package scale

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestCompactUint64RoundTrip verifies the round-trip law for every
// compact integer mode boundary.
func TestCompactUint64RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
	}{
		{"zero", 0},
		{"single-byte-max", 0x3F},
		{"two-byte-min", 0x40},
		{"two-byte-max", 0x3FFF},
		{"four-byte-min", 0x4000},
		{"four-byte-max", 0x3FFFFFFF},
		{"bigint-min", 0x40000000},
		{"bigint-u64-max", ^uint64(0)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeCompactUint64(&buf, test.in); err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeCompactUint64(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != test.in {
				t.Fatalf("round-trip mismatch for %s: got %s, want %s",
					test.name, spew.Sdump(got), spew.Sdump(test.in))
			}
		})
	}
}

// TestCompactBigIntRoundTrip checks the u128 path used for the tip field.
func TestCompactBigIntRoundTrip(t *testing.T) {
	huge, ok := new(big.Int).SetString("340282366920938463463374607431768211455", 10) // 2^128-1
	if !ok {
		t.Fatal("failed to parse test constant")
	}

	for _, in := range []*big.Int{big.NewInt(0), big.NewInt(1_000_000_000_000_000_000), huge} {
		var buf bytes.Buffer
		if err := EncodeCompactBigInt(&buf, in); err != nil {
			t.Fatalf("encode %s: %v", in, err)
		}
		got, err := DecodeCompactBigInt(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("decode %s: %v", in, err)
		}
		if got.Cmp(in) != 0 {
			t.Fatalf("round-trip mismatch: got %s, want %s", got, in)
		}
	}
}

// TestCompactUint32Overflow ensures a u64-only value does not silently
// truncate when decoded as a CompactUint32.
func TestCompactUint32Overflow(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCompactUint64(&buf, uint64(1)<<40); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var c CompactUint32
	if err := c.Decode(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatalf("expected overflow error, got nil")
	}
}
