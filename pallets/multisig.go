package pallets

import (
	"io"

	"github.com/availproject/avail-go-sdk/scale"
	"github.com/availproject/avail-go-sdk/types"
)

// Timepoint identifies the block a multisig operation was first
// approved in, required to approve or cancel a pending call.
type Timepoint struct {
	Height uint32
	Index  uint32
}

func (t Timepoint) Encode(w io.Writer) error {
	if err := scale.EncodeUint32(w, t.Height); err != nil {
		return err
	}
	return scale.EncodeUint32(w, t.Index)
}

func (t *Timepoint) Decode(r io.Reader) error {
	h, err := scale.DecodeUint32(r)
	if err != nil {
		return err
	}
	t.Height = h
	i, err := scale.DecodeUint32(r)
	if err != nil {
		return err
	}
	t.Index = i
	return nil
}

// AsMultiThreshold1 is Multisig.as_multi_threshold_1: immediately
// dispatch Call as the 1-of-N multisig account formed by Threshold=1
// and OtherSignatories, with no pending-approval bookkeeping.
type AsMultiThreshold1 struct {
	OtherSignatories []types.AccountId
	Call             types.Call
}

func (AsMultiThreshold1) PalletID() uint8  { return PalletMultisig }
func (AsMultiThreshold1) VariantID() uint8 { return 0 }

func (c AsMultiThreshold1) Encode(w io.Writer) error {
	if err := scale.EncodeVec(w, c.OtherSignatories, func(w io.Writer, id types.AccountId) error {
		return id.Encode(w)
	}); err != nil {
		return err
	}
	return c.Call.Encode(w)
}

func (c *AsMultiThreshold1) Decode(r io.Reader) error {
	signatories, err := scale.DecodeVec(r, func(r io.Reader) (types.AccountId, error) {
		var id types.AccountId
		err := id.Decode(r)
		return id, err
	})
	if err != nil {
		return err
	}
	c.OtherSignatories = signatories
	call, err := types.DecodeCall(r)
	if err != nil {
		return err
	}
	c.Call = call
	return nil
}

// AsMulti is Multisig.as_multi: approve (and, on the final approval,
// dispatch) a call for an N-of-M multisig account where N > 1.
type AsMulti struct {
	Threshold        uint16
	OtherSignatories []types.AccountId
	MaybeTimepoint   *Timepoint
	Call             types.Call
	MaxWeightRefTime uint64
	MaxWeightProof   uint64
}

func (AsMulti) PalletID() uint8  { return PalletMultisig }
func (AsMulti) VariantID() uint8 { return 1 }

func (c AsMulti) Encode(w io.Writer) error {
	if err := scale.EncodeUint16(w, c.Threshold); err != nil {
		return err
	}
	if err := scale.EncodeVec(w, c.OtherSignatories, func(w io.Writer, id types.AccountId) error {
		return id.Encode(w)
	}); err != nil {
		return err
	}
	if err := scale.EncodeOption(w, c.MaybeTimepoint, func(w io.Writer, tp Timepoint) error {
		return tp.Encode(w)
	}); err != nil {
		return err
	}
	if err := c.Call.Encode(w); err != nil {
		return err
	}
	if err := scale.EncodeCompactUint64(w, c.MaxWeightRefTime); err != nil {
		return err
	}
	return scale.EncodeCompactUint64(w, c.MaxWeightProof)
}

func (c *AsMulti) Decode(r io.Reader) error {
	threshold, err := scale.DecodeUint16(r)
	if err != nil {
		return err
	}
	c.Threshold = threshold

	signatories, err := scale.DecodeVec(r, func(r io.Reader) (types.AccountId, error) {
		var id types.AccountId
		err := id.Decode(r)
		return id, err
	})
	if err != nil {
		return err
	}
	c.OtherSignatories = signatories

	tp, err := scale.DecodeOption(r, func(r io.Reader) (Timepoint, error) {
		var t Timepoint
		err := t.Decode(r)
		return t, err
	})
	if err != nil {
		return err
	}
	c.MaybeTimepoint = tp

	call, err := types.DecodeCall(r)
	if err != nil {
		return err
	}
	c.Call = call

	refTime, err := scale.DecodeCompactUint64(r)
	if err != nil {
		return err
	}
	c.MaxWeightRefTime = refTime

	proof, err := scale.DecodeCompactUint64(r)
	if err != nil {
		return err
	}
	c.MaxWeightProof = proof
	return nil
}

// NewMultisig is emitted when a new pending multisig operation is
// created by the first approver.
type NewMultisig struct {
	Approving  types.AccountId
	MultisigID types.AccountId
	CallHash   types.BlockHash
}

func (NewMultisig) PalletID() uint8  { return PalletMultisig }
func (NewMultisig) VariantID() uint8 { return 0 }

func (e *NewMultisig) Decode(r io.Reader) error {
	if err := e.Approving.Decode(r); err != nil {
		return err
	}
	if err := e.MultisigID.Decode(r); err != nil {
		return err
	}
	return e.CallHash.Decode(r)
}

// MultisigExecuted is emitted when the final approval dispatches the
// pending call, carrying its dispatch result.
type MultisigExecuted struct {
	Approving     types.AccountId
	Timepoint     Timepoint
	MultisigID    types.AccountId
	CallHash      types.BlockHash
	DispatchError *DispatchError
}

func (MultisigExecuted) PalletID() uint8  { return PalletMultisig }
func (MultisigExecuted) VariantID() uint8 { return 1 }

func (e *MultisigExecuted) Decode(r io.Reader) error {
	if err := e.Approving.Decode(r); err != nil {
		return err
	}
	if err := e.Timepoint.Decode(r); err != nil {
		return err
	}
	if err := e.MultisigID.Decode(r); err != nil {
		return err
	}
	if err := e.CallHash.Decode(r); err != nil {
		return err
	}
	derr, err := scale.DecodeOption(r, func(r io.Reader) (DispatchError, error) {
		var d DispatchError
		err := d.Decode(r)
		return d, err
	})
	if err != nil {
		return err
	}
	e.DispatchError = derr
	return nil
}
