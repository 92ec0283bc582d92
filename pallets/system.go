package pallets

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
)

// Remark is System.remark: store args on-chain as a no-op, often used
// to pin an application-defined marker into a block without touching
// any other pallet's state.
type Remark struct {
	Bytes []byte
}

func (Remark) PalletID() uint8  { return PalletSystem }
func (Remark) VariantID() uint8 { return 0 }

func (c Remark) Encode(w io.Writer) error {
	return scale.EncodeBytes(w, c.Bytes)
}

func (c *Remark) Decode(r io.Reader) error {
	b, err := scale.DecodeBytes(r)
	if err != nil {
		return err
	}
	c.Bytes = b
	return nil
}

// DispatchError is the minimal shape of a failed dispatch's error
// payload this module decodes: the module index and error byte, with
// any remaining bytes kept opaque.
type DispatchError struct {
	Kind  uint8
	Index uint8
	Error []byte
}

func (e DispatchError) Encode(w io.Writer) error {
	if err := scale.EncodeUint8(w, e.Kind); err != nil {
		return err
	}
	if err := scale.EncodeUint8(w, e.Index); err != nil {
		return err
	}
	_, err := w.Write(e.Error)
	return err
}

func (e *DispatchError) Decode(r io.Reader) error {
	kind, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}
	e.Kind = kind
	index, err := scale.DecodeUint8(r)
	if err != nil {
		return err
	}
	e.Index = index
	rest, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	e.Error = rest
	return nil
}

// ExtrinsicSuccess is emitted once per successfully dispatched
// extrinsic.
type ExtrinsicSuccess struct{}

func (ExtrinsicSuccess) PalletID() uint8  { return PalletSystem }
func (ExtrinsicSuccess) VariantID() uint8 { return 0 }
func (*ExtrinsicSuccess) Decode(r io.Reader) error {
	_, err := io.ReadAll(r)
	return err
}

// ExtrinsicFailed is emitted once per extrinsic whose dispatch failed,
// carrying the failure reason.
type ExtrinsicFailed struct {
	DispatchError DispatchError
}

func (ExtrinsicFailed) PalletID() uint8  { return PalletSystem }
func (ExtrinsicFailed) VariantID() uint8 { return 1 }

func (e *ExtrinsicFailed) Decode(r io.Reader) error {
	return e.DispatchError.Decode(r)
}
