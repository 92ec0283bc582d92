package types

import (
	"bytes"
	"reflect"
	"testing"
)

func TestMultiAddressRoundTrip(t *testing.T) {
	var id AccountId
	id[3] = 0x7F

	cases := []MultiAddress{
		NewMultiAddressId(id),
		NewMultiAddressIndex(12345),
		{Kind: MultiAddressRaw, Raw: []byte{1, 2, 3, 4}},
		{Kind: MultiAddressAddress32, Address32: [32]byte{9}},
		{Kind: MultiAddressAddress20, Address20: [20]byte{8}},
	}

	for _, want := range cases {
		var buf bytes.Buffer
		if err := want.Encode(&buf); err != nil {
			t.Fatalf("kind=%d: encode: %v", want.Kind, err)
		}

		var got MultiAddress
		if err := got.Decode(bytes.NewReader(buf.Bytes())); err != nil {
			t.Fatalf("kind=%d: decode: %v", want.Kind, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("kind=%d: round-trip mismatch: got %+v want %+v", want.Kind, got, want)
		}
	}
}
