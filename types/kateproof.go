package types

import (
	"fmt"
	"io"

	"github.com/availproject/avail-go-sdk/scale"
)

// MaxKateProofDataSize bounds the size of a single kate proof/commitment
// payload accepted off the wire, the same defensive-length-check shape
// the teacher's MsgCFilter uses for committed filter data.
const MaxKateProofDataSize = 4 * 1024 * 1024

// KateProofKind tags which kate RPC produced a KateProof envelope.
type KateProofKind uint8

const (
	KateProofCell KateProofKind = iota
	KateProofRow
	KateProofDataProof
	KateProofMultiProof
)

// KateProof is the generic envelope this module uses for every
// kate_query* response: the block the proof was computed against, which
// kind of proof it is, and its opaque payload bytes. This generalizes
// the teacher's MsgCFilter (BlockHash + FilterType + Data) from a
// Bitcoin committed filter to an Avail data-availability commitment or
// proof blob — both are "here is the committed/verifiable data for this
// block" envelopes, just for different commitment schemes.
type KateProof struct {
	BlockHash BlockHash
	Kind      KateProofKind
	Data      []byte
}

// Encode writes the kate proof envelope using the wire's
// fixed-hash-then-tag-then-length-prefixed-data shape.
func (p KateProof) Encode(w io.Writer) error {
	if err := p.BlockHash.Encode(w); err != nil {
		return err
	}
	if err := scale.EncodeUint8(w, uint8(p.Kind)); err != nil {
		return err
	}
	if len(p.Data) > MaxKateProofDataSize {
		return fmt.Errorf("types: kate proof data too large (%d > %d)", len(p.Data), MaxKateProofDataSize)
	}
	return scale.EncodeBytes(w, p.Data)
}

// Decode reads a kate proof envelope, rejecting any payload larger than
// MaxKateProofDataSize the same way the teacher's BtcDecode rejects an
// oversized committed filter.
func (p *KateProof) Decode(r io.Reader) error {
	if err := p.BlockHash.Decode(r); err != nil {
		return err
	}
	kind, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}
	p.Kind = KateProofKind(kind)

	data, err := scale.DecodeBytes(r)
	if err != nil {
		return err
	}
	if len(data) > MaxKateProofDataSize {
		return fmt.Errorf("types: kate proof data too large (%d > %d)", len(data), MaxKateProofDataSize)
	}
	p.Data = data
	return nil
}
