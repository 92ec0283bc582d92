package types

import (
	"bytes"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/availproject/avail-go-sdk/scale"
)

// ExtrinsicVersion is the low 7 bits of the version byte every
// extrinsic must carry; this module targets format version 4.
const ExtrinsicVersion uint8 = 4

// extrinsicSignedBit marks a version byte as carrying a signature.
const extrinsicSignedBit uint8 = 0x80

// SigningPayloadThreshold is the fixed protocol constant: signing
// payloads longer than this many bytes are hashed with blake2b-256
// before signing instead of being signed directly.
const SigningPayloadThreshold = 256

// Call is the generic, pallet-agnostic shape of a dispatchable call:
// a (pallet, variant) discriminant pair and its SCALE-encoded
// arguments. Pallet-specific typed calls (package pallets) both
// produce and consume this shape via their Dispatchable interface.
type Call struct {
	PalletID  uint8
	VariantID uint8
	Args      []byte
}

func (c Call) Encode(w io.Writer) error {
	if err := scale.EncodeUint8(w, c.PalletID); err != nil {
		return err
	}
	if err := scale.EncodeUint8(w, c.VariantID); err != nil {
		return err
	}
	_, err := w.Write(c.Args)
	return err
}

// DecodeCall reads a pallet id and variant id, then consumes the
// remainder of r as opaque argument bytes. Because calls have no
// self-describing length, this is only safe to use when r's boundary
// is already known (e.g. a slice of exactly the call's bytes, as when
// decoding an Extrinsic whose overall length is compact-prefixed).
func DecodeCall(r io.Reader) (Call, error) {
	palletID, err := scale.DecodeUint8(r)
	if err != nil {
		return Call{}, err
	}
	variantID, err := scale.DecodeUint8(r)
	if err != nil {
		return Call{}, err
	}
	args, err := io.ReadAll(r)
	if err != nil {
		return Call{}, err
	}
	return Call{PalletID: palletID, VariantID: variantID, Args: args}, nil
}

// ExtrinsicExtra is the SCALE-encoded, transmitted portion of a signed
// extrinsic's metadata.
type ExtrinsicExtra struct {
	Era    Era
	Nonce  uint64 // compact u32 on the wire
	Tip    Amount // compact u128 on the wire
	AppID  uint64 // compact u32 on the wire
}

func (e ExtrinsicExtra) Encode(w io.Writer) error {
	if err := e.Era.Encode(w); err != nil {
		return err
	}
	if err := scale.EncodeCompactUint64(w, e.Nonce); err != nil {
		return err
	}
	if err := scale.EncodeCompactBigInt(w, &e.Tip.Int); err != nil {
		return err
	}
	return scale.EncodeCompactUint64(w, e.AppID)
}

func (e *ExtrinsicExtra) Decode(r io.Reader) error {
	if err := e.Era.Decode(r); err != nil {
		return err
	}
	nonce, err := scale.DecodeCompactUint64(r)
	if err != nil {
		return err
	}
	e.Nonce = nonce
	tip, err := scale.DecodeCompactBigInt(r)
	if err != nil {
		return err
	}
	e.Tip = NewAmountFromLenna(tip)
	appID, err := scale.DecodeCompactUint64(r)
	if err != nil {
		return err
	}
	e.AppID = appID
	return nil
}

// ExtrinsicAdditional is signed over but never transmitted on the
// wire: it binds a signature to a specific runtime and chain.
type ExtrinsicAdditional struct {
	SpecVersion  uint32
	TxVersion    uint32
	GenesisHash  BlockHash
	ForkHash     BlockHash
}

func (a ExtrinsicAdditional) Encode(w io.Writer) error {
	if err := scale.EncodeUint32(w, a.SpecVersion); err != nil {
		return err
	}
	if err := scale.EncodeUint32(w, a.TxVersion); err != nil {
		return err
	}
	if err := a.GenesisHash.Encode(w); err != nil {
		return err
	}
	return a.ForkHash.Encode(w)
}

// SignedFields carries the address/signature/extra triple present only
// on signed extrinsics.
type SignedFields struct {
	Address   MultiAddress
	Signature MultiSignature
	Extra     ExtrinsicExtra
}

// Extrinsic is the full on-wire transaction-or-inherent: an optional
// signed envelope around a call.
type Extrinsic struct {
	Signed *SignedFields
	Call   Call
}

// IsSigned reports whether this extrinsic carries a signature.
func (e Extrinsic) IsSigned() bool {
	return e.Signed != nil
}

// encodeBody writes the version byte, optional signed fields, and call
// — everything except the compact length prefix.
func (e Extrinsic) encodeBody(w io.Writer) error {
	version := ExtrinsicVersion
	if e.IsSigned() {
		version |= extrinsicSignedBit
	}
	if err := scale.EncodeUint8(w, version); err != nil {
		return err
	}
	if e.IsSigned() {
		if err := e.Signed.Address.Encode(w); err != nil {
			return err
		}
		if err := e.Signed.Signature.Encode(w); err != nil {
			return err
		}
		if err := e.Signed.Extra.Encode(w); err != nil {
			return err
		}
	}
	return e.Call.Encode(w)
}

// Encode writes the full length-prefixed extrinsic, the form that is
// actually submitted to author_submitExtrinsic.
func (e Extrinsic) Encode(w io.Writer) error {
	var body bytes.Buffer
	if err := e.encodeBody(&body); err != nil {
		return err
	}
	if err := scale.EncodeCompactUint64(w, uint64(body.Len())); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// Decode reads a length-prefixed extrinsic, verifying that the
// declared length matches the bytes actually consumed.
func (e *Extrinsic) Decode(r io.Reader) error {
	length, err := scale.DecodeCompactUint64(r)
	if err != nil {
		return err
	}

	body := make([]byte, length)
	if err := scale.ReadFull(r, body); err != nil {
		return err
	}
	bodyReader := bytes.NewReader(body)

	version, err := scale.DecodeUint8(bodyReader)
	if err != nil {
		return err
	}
	signed := version&extrinsicSignedBit != 0
	if version&0x7F != ExtrinsicVersion {
		return &scale.DecodeError{Kind: scale.InvalidVersion, Msg: "extrinsic version byte is not 4 after masking"}
	}

	if signed {
		var fields SignedFields
		if err := fields.Address.Decode(bodyReader); err != nil {
			return err
		}
		if err := fields.Signature.Decode(bodyReader); err != nil {
			return err
		}
		if err := fields.Extra.Decode(bodyReader); err != nil {
			return err
		}
		e.Signed = &fields
	} else {
		e.Signed = nil
	}

	call, err := DecodeCall(bodyReader)
	if err != nil {
		return err
	}
	e.Call = call

	if bodyReader.Len() != 0 {
		return &scale.DecodeError{Kind: scale.LengthMismatch, Msg: "extrinsic body has trailing bytes after call decode"}
	}
	return nil
}

// Hash computes the extrinsic's identity hash: blake2b-256 of its
// full transmitted (length-prefixed) bytes.
func (e Extrinsic) Hash() BlockHash {
	encoded := scale.EncodeToBytes(e)
	sum := blake2b.Sum256(encoded)
	return BlockHash(sum)
}

// SigningPayload computes encode(call) || encode(extra) || encode(additional),
// hashing it with blake2b-256 first if it exceeds SigningPayloadThreshold
// bytes, per the fixed protocol rule.
func SigningPayload(call Call, extra ExtrinsicExtra, additional ExtrinsicAdditional) ([]byte, error) {
	var buf bytes.Buffer
	if err := call.Encode(&buf); err != nil {
		return nil, err
	}
	if err := extra.Encode(&buf); err != nil {
		return nil, err
	}
	if err := additional.Encode(&buf); err != nil {
		return nil, err
	}

	payload := buf.Bytes()
	if len(payload) > SigningPayloadThreshold {
		sum := blake2b.Sum256(payload)
		return sum[:], nil
	}
	return payload, nil
}
