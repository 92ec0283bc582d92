package types

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
)

// MultiSignatureKind tags the signature scheme a MultiSignature holds.
type MultiSignatureKind uint8

const (
	MultiSignatureEd25519 MultiSignatureKind = iota
	MultiSignatureSr25519
	MultiSignatureEcdsa
)

// MultiSignature is the tagged union over the three signature schemes a
// Substrate-style chain accepts on an extrinsic.
type MultiSignature struct {
	Kind    MultiSignatureKind
	Ed25519 [64]byte
	Sr25519 [64]byte
	Ecdsa   [65]byte
}

// NewEd25519Signature wraps a 64-byte ed25519 signature.
func NewEd25519Signature(sig [64]byte) MultiSignature {
	return MultiSignature{Kind: MultiSignatureEd25519, Ed25519: sig}
}

// NewSr25519Signature wraps a 64-byte sr25519 signature.
func NewSr25519Signature(sig [64]byte) MultiSignature {
	return MultiSignature{Kind: MultiSignatureSr25519, Sr25519: sig}
}

// NewEcdsaSignature wraps a 65-byte (r||s||recovery-id) ecdsa signature.
func NewEcdsaSignature(sig [65]byte) MultiSignature {
	return MultiSignature{Kind: MultiSignatureEcdsa, Ecdsa: sig}
}

func (m MultiSignature) Encode(w io.Writer) error {
	if err := scale.EncodeUint8(w, uint8(m.Kind)); err != nil {
		return err
	}
	switch m.Kind {
	case MultiSignatureEd25519:
		return scale.EncodeFixedBytes(w, m.Ed25519[:])
	case MultiSignatureSr25519:
		return scale.EncodeFixedBytes(w, m.Sr25519[:])
	case MultiSignatureEcdsa:
		return scale.EncodeFixedBytes(w, m.Ecdsa[:])
	default:
		return &scale.DecodeError{Kind: scale.UnknownVariant, Msg: "multisignature: unknown kind on encode"}
	}
}

func (m *MultiSignature) Decode(r io.Reader) error {
	tag, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}
	m.Kind = MultiSignatureKind(tag)
	switch m.Kind {
	case MultiSignatureEd25519:
		return scale.DecodeFixedBytes(r, m.Ed25519[:])
	case MultiSignatureSr25519:
		return scale.DecodeFixedBytes(r, m.Sr25519[:])
	case MultiSignatureEcdsa:
		return scale.DecodeFixedBytes(r, m.Ecdsa[:])
	default:
		return &scale.DecodeError{Kind: scale.UnknownVariant, Msg: "multisignature: unknown discriminant"}
	}
}

// Bytes returns the raw signature bytes for whichever variant is set,
// without the leading discriminant.
func (m MultiSignature) Bytes() []byte {
	switch m.Kind {
	case MultiSignatureEd25519:
		return m.Ed25519[:]
	case MultiSignatureSr25519:
		return m.Sr25519[:]
	case MultiSignatureEcdsa:
		return m.Ecdsa[:]
	default:
		return nil
	}
}
