package types

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
)

// MultiAddressKind tags the variant a MultiAddress holds.
type MultiAddressKind uint8

const (
	MultiAddressId MultiAddressKind = iota
	MultiAddressIndex
	MultiAddressRaw
	MultiAddressAddress32
	MultiAddressAddress20
)

// MultiAddress is the tagged union Substrate uses to reference an
// account in a call or signature origin.
type MultiAddress struct {
	Kind     MultiAddressKind
	Id       AccountId
	Index    uint64 // compact u32/u64, widened for convenience
	Raw      []byte
	Address32 [32]byte
	Address20 [20]byte
}

// NewMultiAddressId builds the common Id(AccountId) variant.
func NewMultiAddressId(id AccountId) MultiAddress {
	return MultiAddress{Kind: MultiAddressId, Id: id}
}

// NewMultiAddressIndex builds the Index(compact) variant.
func NewMultiAddressIndex(index uint64) MultiAddress {
	return MultiAddress{Kind: MultiAddressIndex, Index: index}
}

func (m MultiAddress) Encode(w io.Writer) error {
	if err := scale.EncodeUint8(w, uint8(m.Kind)); err != nil {
		return err
	}
	switch m.Kind {
	case MultiAddressId:
		return m.Id.Encode(w)
	case MultiAddressIndex:
		return scale.EncodeCompactUint64(w, m.Index)
	case MultiAddressRaw:
		return scale.EncodeBytes(w, m.Raw)
	case MultiAddressAddress32:
		return scale.EncodeFixedBytes(w, m.Address32[:])
	case MultiAddressAddress20:
		return scale.EncodeFixedBytes(w, m.Address20[:])
	default:
		return &scale.DecodeError{Kind: scale.UnknownVariant, Msg: "multiaddress: unknown kind on encode"}
	}
}

func (m *MultiAddress) Decode(r io.Reader) error {
	tag, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}
	m.Kind = MultiAddressKind(tag)
	switch m.Kind {
	case MultiAddressId:
		return m.Id.Decode(r)
	case MultiAddressIndex:
		v, err := scale.DecodeCompactUint64(r)
		if err != nil {
			return err
		}
		m.Index = v
		return nil
	case MultiAddressRaw:
		b, err := scale.DecodeBytes(r)
		if err != nil {
			return err
		}
		m.Raw = b
		return nil
	case MultiAddressAddress32:
		return scale.DecodeFixedBytes(r, m.Address32[:])
	case MultiAddressAddress20:
		return scale.DecodeFixedBytes(r, m.Address20[:])
	default:
		return &scale.DecodeError{Kind: scale.UnknownVariant, Msg: "multiaddress: unknown discriminant"}
	}
}
