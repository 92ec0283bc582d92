// Package types implements the core on-chain data model: account
// identity, addressing, mortality, extrinsics and their signed
// envelope. Binary shapes follow spec section 3 bit-for-bit; the SS58
// address codec below generalizes the base58-plus-checksum idiom this
// module's teacher lineage uses for Wallet Import Format strings
// (exccutil.WIF / dcrutil.WIF) to Substrate's blake2b-512-checksummed,
// network-prefixed scheme.
package types

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/EXCCoin/base58"
	"golang.org/x/crypto/blake2b"

	"github.com/availproject/avail-go-sdk/scale"
)

// AccountIdLen is the byte length of an AccountId (an sr25519/ed25519
// public key).
const AccountIdLen = 32

// ErrMalformedAddress mirrors the teacher's ErrMalformedPrivateKey: the
// decoded payload did not have a length this codec understands.
var ErrMalformedAddress = errors.New("types: malformed ss58 address")

// ErrChecksumMismatch mirrors the teacher's WIF checksum error.
var ErrChecksumMismatch = errors.New("types: ss58 checksum mismatch")

// ss58Prefix is the fixed preimage prefix blake2b-512 hashes the
// network-byte(s)-plus-payload under, per the SS58 specification.
var ss58Prefix = []byte("SS58PRE")

// AccountId is a 32-byte opaque account identifier with an SS58
// textual form.
type AccountId [AccountIdLen]byte

// Encode writes the raw 32 bytes of the account id.
func (a AccountId) Encode(w io.Writer) error {
	return scale.EncodeFixedBytes(w, a[:])
}

// Decode reads the raw 32 bytes of an account id.
func (a *AccountId) Decode(r io.Reader) error {
	return scale.DecodeFixedBytes(r, a[:])
}

// Bytes returns the account id's raw bytes.
func (a AccountId) Bytes() []byte {
	return a[:]
}

// SS58 encodes the account id to its textual form for the given
// network prefix (0 for Polkadot-style "generic Substrate", 42 for the
// common development prefix).
func (a AccountId) SS58(networkPrefix uint16) string {
	payload := ss58PrefixBytes(networkPrefix)
	payload = append(payload, a[:]...)

	checksum := ss58Checksum(payload)
	full := append(payload, checksum[:2]...)
	return base58.Encode(full)
}

// ParseSS58 decodes an SS58-encoded address string into an AccountId
// and the network prefix it was encoded for.
func ParseSS58(addr string) (AccountId, uint16, error) {
	decoded := base58.Decode(addr)

	var prefixLen int
	var networkPrefix uint16
	switch {
	case len(decoded) == 1+AccountIdLen+2:
		prefixLen = 1
		networkPrefix = uint16(decoded[0])
	case len(decoded) == 2+AccountIdLen+2:
		prefixLen = 2
		// Two-byte prefixes are encoded big-endian-ish per the SS58
		// spec's bit-interleaved scheme; this module only emits and
		// accepts the single-byte form used by Avail's own networks,
		// but still parses the two-byte shape so foreign addresses
		// from other Substrate chains do not hard-fail decoding.
		networkPrefix = uint16(decoded[0])<<8 | uint16(decoded[1])
	default:
		return AccountId{}, 0, ErrMalformedAddress
	}

	payload := decoded[:prefixLen+AccountIdLen]
	wantChecksum := decoded[prefixLen+AccountIdLen:]
	checksum := ss58Checksum(payload)
	if !bytes.Equal(checksum[:2], wantChecksum) {
		return AccountId{}, 0, ErrChecksumMismatch
	}

	var id AccountId
	copy(id[:], decoded[prefixLen:prefixLen+AccountIdLen])
	return id, networkPrefix, nil
}

func ss58PrefixBytes(networkPrefix uint16) []byte {
	if networkPrefix <= 63 {
		return []byte{byte(networkPrefix)}
	}
	// Two-byte form, simple-prefix branch of the SS58 spec (prefixes in
	// [64, 16383]); not used by any network this module ships, kept so
	// ParseSS58/SS58 remain total functions over uint16.
	first := byte(0b01000000 | (networkPrefix & 0b0011_1111))
	second := byte((networkPrefix >> 6) & 0xFF)
	return []byte{first, second}
}

func ss58Checksum(payload []byte) []byte {
	h, err := blake2b.New512(nil)
	if err != nil {
		// blake2b.New512 only errors on an invalid key, and nil is
		// always valid.
		panic(fmt.Sprintf("types: blake2b-512 init: %v", err))
	}
	h.Write(ss58Prefix)
	h.Write(payload)
	return h.Sum(nil)
}

// String implements fmt.Stringer using the well-known Avail/Substrate
// generic prefix (42), matching how most block explorers render an
// AccountId absent any chain-specific prefix.
func (a AccountId) String() string {
	return a.SS58(42)
}
