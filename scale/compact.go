package scale

import (
	"encoding/binary"
	"io"
	"math/big"
)

// Substrate's CompactSCALE integer scheme. The low two bits of the first
// byte select one of four encoding modes; a naive fixed-width
// little-endian write is incorrect here and will corrupt nonce, tip and
// app_id on the wire (see the module's design notes on compact
// integers).
const (
	compactModeSingleByte = 0
	compactModeTwoByte    = 1
	compactModeFourByte   = 2
	compactModeBigInt     = 3
)

// EncodeCompactUint64 writes v to w using the compact integer scheme.
func EncodeCompactUint64(w io.Writer, v uint64) error {
	switch {
	case v <= 0x3F:
		_, err := w.Write([]byte{byte(v << 2) | compactModeSingleByte})
		return err
	case v <= 0x3FFF:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v<<2)|compactModeTwoByte)
		_, err := w.Write(buf[:])
		return err
	case v <= 0x3FFFFFFF:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v<<2)|compactModeFourByte)
		_, err := w.Write(buf[:])
		return err
	default:
		return encodeCompactBigInt(w, new(big.Int).SetUint64(v))
	}
}

// EncodeCompactBigInt writes an arbitrary-precision non-negative integer
// (used for the compact-u128 tip field) using the compact scheme.
func EncodeCompactBigInt(w io.Writer, v *big.Int) error {
	if v.Sign() < 0 {
		return &DecodeError{Kind: LengthMismatch, Msg: "compact integer must be non-negative"}
	}
	if v.IsUint64() {
		return EncodeCompactUint64(w, v.Uint64())
	}
	return encodeCompactBigInt(w, v)
}

func encodeCompactBigInt(w io.Writer, v *big.Int) error {
	raw := v.Bytes() // big-endian, minimal length
	le := make([]byte, len(raw))
	for i, b := range raw {
		le[len(raw)-1-i] = b
	}
	// Trim trailing (most-significant) zero bytes so the byte-count tag
	// reflects the minimal encoding, then pad back to at least 4 bytes
	// since the big-int mode is only used above the 4-byte fixed range.
	for len(le) > 4 && le[len(le)-1] == 0 {
		le = le[:len(le)-1]
	}
	numBytes := len(le)
	tag := byte((numBytes-4)<<2) | compactModeBigInt
	if _, err := w.Write([]byte{tag}); err != nil {
		return err
	}
	_, err := w.Write(le)
	return err
}

// DecodeCompactUint64 reads a compact integer from r. The value must fit
// in a uint64; use DecodeCompactBigInt for the unbounded tip/app_id
// fields where a u128 is legal on the wire.
func DecodeCompactUint64(r io.Reader) (uint64, error) {
	v, err := DecodeCompactBigInt(r)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, &DecodeError{Kind: LengthMismatch, Msg: "compact integer overflows uint64"}
	}
	return v.Uint64(), nil
}

// DecodeCompactBigInt reads a compact integer of any of the four modes
// and returns it as a big.Int.
func DecodeCompactBigInt(r io.Reader) (*big.Int, error) {
	var first [1]byte
	if err := ReadFull(r, first[:]); err != nil {
		return nil, err
	}
	mode := first[0] & 0x03
	switch mode {
	case compactModeSingleByte:
		return big.NewInt(int64(first[0] >> 2)), nil
	case compactModeTwoByte:
		var rest [1]byte
		if err := ReadFull(r, rest[:]); err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint16([]byte{first[0], rest[0]})
		return big.NewInt(int64(v >> 2)), nil
	case compactModeFourByte:
		var rest [3]byte
		if err := ReadFull(r, rest[:]); err != nil {
			return nil, err
		}
		buf := []byte{first[0], rest[0], rest[1], rest[2]}
		v := binary.LittleEndian.Uint32(buf)
		return big.NewInt(int64(v >> 2)), nil
	case compactModeBigInt:
		numBytes := int(first[0]>>2) + 4
		le := make([]byte, numBytes)
		if err := ReadFull(r, le); err != nil {
			return nil, err
		}
		be := make([]byte, numBytes)
		for i, b := range le {
			be[numBytes-1-i] = b
		}
		return new(big.Int).SetBytes(be), nil
	default:
		// unreachable: mode is two bits
		return nil, &DecodeError{Kind: LengthMismatch, Msg: "impossible compact mode"}
	}
}

// CompactUint32 is a compact-encoded uint32, used for nonce and app_id.
type CompactUint32 uint32

func (c CompactUint32) Encode(w io.Writer) error {
	return EncodeCompactUint64(w, uint64(c))
}

func (c *CompactUint32) Decode(r io.Reader) error {
	v, err := DecodeCompactUint64(r)
	if err != nil {
		return err
	}
	if v > 0xFFFFFFFF {
		return &DecodeError{Kind: LengthMismatch, Msg: "compact value overflows uint32"}
	}
	*c = CompactUint32(v)
	return nil
}

// CompactUint128 is a compact-encoded u128, used for the tip field.
type CompactUint128 struct {
	big.Int
}

// NewCompactUint128 builds a CompactUint128 from a uint64 value.
func NewCompactUint128(v uint64) CompactUint128 {
	var c CompactUint128
	c.Int.SetUint64(v)
	return c
}

func (c CompactUint128) Encode(w io.Writer) error {
	return EncodeCompactBigInt(w, &c.Int)
}

func (c *CompactUint128) Decode(r io.Reader) error {
	v, err := DecodeCompactBigInt(r)
	if err != nil {
		return err
	}
	c.Int = *v
	return nil
}
